package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goticket/goticket-web/internal/api"
	"github.com/goticket/goticket-web/internal/model"
)

type fakeAuth struct {
	res *api.AuthResult
	err error
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	return f.res, f.err
}

func newTestStore(auth Authenticator) *Store {
	return NewStore("test-secret", time.Hour, auth)
}

func newCtx(cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", CookieName)
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	s := newTestStore(&fakeAuth{res: &api.AuthResult{
		ID: 7, Email: "ana@example.com", Role: "MANAGER", Token: "backend-jwt",
	}})
	c, rec := newCtx()

	ident, err := s.Login(c, "ana@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(7), ident.ID)
	assert.Equal(t, model.RoleManager, ident.Role)

	ck := sessionCookie(t, rec)
	assert.NotEmpty(t, ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Positive(t, ck.MaxAge)
}

func TestLoginFailureSurfacesBackendMessage(t *testing.T) {
	s := newTestStore(&fakeAuth{err: &api.Error{Status: http.StatusUnauthorized, Message: "Account not approved"}})
	c, rec := newCtx()

	_, err := s.Login(c, "new@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "Account not approved", api.UserMessage(err, "Invalid credentials"))
	assert.Empty(t, rec.Result().Cookies(), "failed login must not set a cookie")
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	s := newTestStore(&fakeAuth{res: &api.AuthResult{ID: 7, Email: "x@example.com", Role: "SUPERUSER", Token: "t"}})
	c, _ := newCtx()

	_, err := s.Login(c, "x@example.com", "pw")
	assert.Error(t, err)
}

func TestMiddlewareRestoresSession(t *testing.T) {
	s := newTestStore(&fakeAuth{res: &api.AuthResult{
		ID: 7, Email: "ana@example.com", Role: "USER", Token: "backend-jwt",
	}})
	loginCtx, rec := newCtx()
	_, err := s.Login(loginCtx, "ana@example.com", "pw")
	require.NoError(t, err)

	c, _ := newCtx(sessionCookie(t, rec))
	var ident model.Identity
	var ok bool
	var token, sid string
	h := s.Middleware()(func(c echo.Context) error {
		ident, ok = Current(c)
		token = Token(c)
		sid = ID(c)
		return nil
	})
	require.NoError(t, h(c))

	require.True(t, ok)
	assert.Equal(t, int64(7), ident.ID)
	assert.Equal(t, "ana@example.com", ident.Email)
	assert.Equal(t, model.RoleUser, ident.Role)
	assert.Equal(t, "backend-jwt", token)
	assert.NotEmpty(t, sid)
}

func TestEachLoginGetsDistinctSessionID(t *testing.T) {
	s := newTestStore(&fakeAuth{res: &api.AuthResult{
		ID: 7, Email: "ana@example.com", Role: "USER", Token: "t",
	}})

	sids := make(map[string]bool)
	for i := 0; i < 2; i++ {
		loginCtx, rec := newCtx()
		_, err := s.Login(loginCtx, "ana@example.com", "pw")
		require.NoError(t, err)

		c, _ := newCtx(sessionCookie(t, rec))
		h := s.Middleware()(func(c echo.Context) error {
			sids[ID(c)] = true
			return nil
		})
		require.NoError(t, h(c))
	}
	assert.Len(t, sids, 2, "two logins must not share workflow state")
}

func TestCorruptCookieIsClearedAndAnonymous(t *testing.T) {
	s := newTestStore(&fakeAuth{})
	c, rec := newCtx(&http.Cookie{Name: CookieName, Value: "not-a-jwt"})

	var ok bool
	h := s.Middleware()(func(c echo.Context) error {
		_, ok = Current(c)
		return nil
	})
	require.NoError(t, h(c))

	assert.False(t, ok)
	ck := sessionCookie(t, rec)
	assert.Empty(t, ck.Value)
	assert.Negative(t, ck.MaxAge)
}

func TestWrongSecretIsAnonymous(t *testing.T) {
	minting := NewStore("secret-a", time.Hour, &fakeAuth{res: &api.AuthResult{
		ID: 7, Email: "a@example.com", Role: "USER", Token: "t",
	}})
	loginCtx, rec := newCtx()
	_, err := minting.Login(loginCtx, "a@example.com", "pw")
	require.NoError(t, err)

	verifying := NewStore("secret-b", time.Hour, &fakeAuth{})
	c, _ := newCtx(sessionCookie(t, rec))
	var ok bool
	h := verifying.Middleware()(func(c echo.Context) error {
		_, ok = Current(c)
		return nil
	})
	require.NoError(t, h(c))
	assert.False(t, ok)
}

func TestLogoutIdempotent(t *testing.T) {
	s := newTestStore(&fakeAuth{})
	c, rec := newCtx()

	s.Logout(c)
	s.Logout(c)

	expired := 0
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			assert.Empty(t, ck.Value)
			assert.Negative(t, ck.MaxAge)
			expired++
		}
	}
	assert.Equal(t, 2, expired)
}
