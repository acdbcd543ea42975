package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/api"
	"github.com/goticket/goticket-web/internal/model"
)

// CookieName is the single cookie this application sets.  Everything the
// original client kept in browser storage (user, token, userId, userRole)
// lives inside it, so logout clears it wholesale.
const CookieName = "goticket_session"

// Authenticator is the slice of the API client the store needs.  Kept as
// an interface so tests can fail logins with exact backend messages.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
}

// Store mints, restores and destroys session cookies.  It holds no
// per-user state itself; the cookie is the only durable record.
type Store struct {
	secret []byte
	ttl    time.Duration
	auth   Authenticator
}

// NewStore builds a Store.  The secret signs session cookies; rotating it
// invalidates every live session.
func NewStore(secret string, ttl time.Duration, auth Authenticator) *Store {
	return &Store{secret: []byte(secret), ttl: ttl, auth: auth}
}

// Login authenticates against the backend and, on success, establishes the
// session cookie.  The returned error keeps the backend's own message (for
// texts like "Account not approved by admin") so callers can surface it
// verbatim.
func (s *Store) Login(c echo.Context, email, password string) (model.Identity, error) {
	res, err := s.auth.Login(c.Request().Context(), email, password)
	if err != nil {
		return model.Identity{}, err
	}
	role, ok := model.ParseRole(res.Role)
	if !ok {
		// The backend authenticated someone it cannot describe; treat it
		// as a failed login rather than minting a roleless session.
		return model.Identity{}, &api.Error{Status: http.StatusUnauthorized, Message: "login returned an unknown role"}
	}
	ident := model.Identity{ID: res.ID, Email: res.Email, Role: role}

	tok, err := newToken(s.secret, payload{
		Identity:     ident,
		BackendToken: res.Token,
		SID:          uuid.NewString(),
	}, s.ttl)
	if err != nil {
		return model.Identity{}, err
	}
	c.SetCookie(s.cookie(tok, s.ttl))
	return ident, nil
}

// Logout destroys the session cookie.  Safe to call when no session
// exists; expiring an absent cookie is a no-op in the browser.
func (s *Store) Logout(c echo.Context) {
	c.SetCookie(s.cookie("", -time.Hour))
}

// restore reads and validates the session cookie.  A missing cookie means
// anonymous; a corrupt or expired one is cleared silently and likewise
// treated as anonymous, never as an error.
func (s *Store) restore(c echo.Context) (payload, bool) {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return payload{}, false
	}
	p, err := parseToken(s.secret, ck.Value)
	if err != nil {
		s.Logout(c)
		return payload{}, false
	}
	return p, true
}

func (s *Store) cookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
