package router // package router defines how HTTP routes are registered for the web client

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/goticket/goticket-web/internal/config"
	"github.com/goticket/goticket-web/internal/handler"
	"github.com/goticket/goticket-web/internal/middleware"
	"github.com/goticket/goticket-web/internal/session"
)

// Deps bundles everything route registration needs.  Handlers own their
// backend access; the router only decides who may reach them.
type Deps struct {
	Log      *zap.Logger
	Sessions *session.Store
	Redis    *redis.Client
	Auth     *handler.AuthHandler
	Home     *handler.HomeHandler
	User     *handler.UserHandler
	Booking  *handler.BookingHandler
	Manager  *handler.ManagerHandler
	Admin    *handler.AdminHandler
}

// Register wires every route.  The session middleware runs first on every
// request so the identity is settled before any guard or handler looks at
// it.
func Register(e *echo.Echo, d Deps) {
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(d.Sessions.Middleware())

	registerPublic(e, d)
	registerUser(e, d)
	registerManager(e, d)
	registerAdmin(e, d)
}

// registerPublic wires the routes that need no session: landing, health,
// and the auth pages.  Login posts go through the rate limiter.
func registerPublic(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)
	e.GET("/", d.Home.Landing)
	e.GET("/landing", d.Home.Landing)

	e.GET("/login", d.Auth.LoginPage)
	e.POST("/login", d.Auth.Login, middleware.LoginRateLimit(config.LoadLoginRateConfig(), d.Redis))
	e.GET("/register", d.Auth.RegisterPage)
	e.POST("/register", d.Auth.Register)
	e.GET("/logout", d.Auth.Logout)
	e.POST("/logout", d.Auth.Logout)
}
