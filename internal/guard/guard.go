// Package guard gates view access by role.  It is the web rendition of a
// client-side protected route: instead of rendering a forbidden page or a
// JSON 403, an unauthorized request is redirected before the protected
// handler and its backend fetches ever run.
package guard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/model"
	"github.com/goticket/goticket-web/internal/session"
)

// LoginPath is where anonymous requests are sent.
const LoginPath = "/login"

// HomePath maps a role to its default view.  The switch is exhaustive over
// model.Role; an impossible value falls back to the login page rather than
// guessing a privilege level.
func HomePath(role model.Role) string {
	switch role {
	case model.RoleUser:
		return "/dashboard"
	case model.RoleManager:
		return "/manager"
	case model.RoleAdmin:
		return "/admin"
	}
	return LoginPath
}

// Require returns middleware admitting only the listed roles.  Anonymous
// requests go to the login page; authenticated but under-privileged ones
// go to their own role's home view.  The decision is made fresh on every
// request; nothing is cached across logins.
func Require(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := session.Current(c)
			if !ok {
				return c.Redirect(http.StatusSeeOther, LoginPath)
			}
			if !allowed[ident.Role] {
				return c.Redirect(http.StatusSeeOther, HomePath(ident.Role))
			}
			return next(c)
		}
	}
}
