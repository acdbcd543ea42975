package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/goticket/goticket-web/internal/config"
)

// LoginRateLimit caps login attempts per client address with a fixed
// window counter in Redis (INCR + EXPIRE on first hit).  Without Redis,
// or when disabled, it is a passthrough.  Redis errors fail open: losing
// the limiter must not lock everyone out.
func LoginRateLimit(cfg config.LoginRateConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := cfg.Prefix + ":" + c.RealIP()
			ctx := c.Request().Context()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if n == 1 {
				rdb.Expire(ctx, key, cfg.Window)
			}
			if n > int64(cfg.Attempts) {
				return c.String(http.StatusTooManyRequests, "Too many login attempts. Please wait a minute and try again.")
			}
			return next(c)
		}
	}
}
