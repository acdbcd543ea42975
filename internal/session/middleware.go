package session

import (
	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/model"
)

// Context keys under which the restored session is published to handlers
// and the route guard.
const (
	ctxIdentity = "identity"
	ctxToken    = "backend_token"
	ctxSID      = "session_id"
)

// Middleware restores the session before anything else runs, so guards and
// handlers can read the identity synchronously and no protected view is
// ever evaluated with the session still undecided.
func (s *Store) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p, ok := s.restore(c); ok {
				c.Set(ctxIdentity, p.Identity)
				c.Set(ctxToken, p.BackendToken)
				c.Set(ctxSID, p.SID)
			}
			return next(c)
		}
	}
}

// Current returns the identity restored for this request, with ok=false
// for anonymous requests.
func Current(c echo.Context) (model.Identity, bool) {
	ident, ok := c.Get(ctxIdentity).(model.Identity)
	return ident, ok && !ident.Anonymous()
}

// Token returns the backend bearer token for this request, or "" when the
// request is anonymous or the backend issued no token at login.
func Token(c echo.Context) string {
	tok, _ := c.Get(ctxToken).(string)
	return tok
}

// ID returns the per-login session id, or "" for anonymous requests.  It
// keys server-side workflow state, so two logins by the same user do not
// share a seat selection.
func ID(c echo.Context) string {
	sid, _ := c.Get(ctxSID).(string)
	return sid
}
