package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/goticket/goticket-web/internal/api"
	"github.com/goticket/goticket-web/internal/booking"
	"github.com/goticket/goticket-web/internal/cache"
	"github.com/goticket/goticket-web/internal/config"
	"github.com/goticket/goticket-web/internal/handler"
	"github.com/goticket/goticket-web/internal/router"
	"github.com/goticket/goticket-web/internal/session"
	"github.com/goticket/goticket-web/internal/stats"
	"github.com/goticket/goticket-web/internal/view"
)

func main() {
	cfg := config.Load()

	log, err := newLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	client := api.New(cfg.BackendURL, cfg.HTTPTimeout)

	// Redis is optional: without it the event cache and login limiter
	// switch themselves off.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, event cache and login rate limit disabled")
	} else if ec := cache.NewEvents(rdb, config.LoadCacheConfig()); ec != nil {
		client.WithEventCache(ec)
	}

	sessions := session.NewStore(cfg.SessionSecret, cfg.SessionTTL, client)
	flows := booking.NewRegistry(client, cfg.WorkflowTTL)
	refresher := stats.NewRefresher(client, cfg.StatsRefresh, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go refresher.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatal("template parse failed", zap.Error(err))
	}
	e.Renderer = renderer

	router.Register(e, router.Deps{
		Log:      log,
		Sessions: sessions,
		Redis:    rdb,
		Auth:     handler.NewAuthHandler(sessions, flows, client),
		Home:     handler.NewHomeHandler(client),
		User:     handler.NewUserHandler(client),
		Booking:  handler.NewBookingHandler(flows, client),
		Manager:  handler.NewManagerHandler(client, refresher),
		Admin:    handler.NewAdminHandler(client),
	})

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("backend", cfg.BackendURL))

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown incomplete", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
