package session // package session holds the authenticated Identity across page loads

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for signing the session cookie

	"github.com/goticket/goticket-web/internal/model"
)

// payload is what a session cookie decodes to: the identity, the bearer
// token for backend calls, and a per-login session id used to key
// server-side workflow state.
type payload struct {
	Identity     model.Identity
	BackendToken string
	SID          string
}

// errBadToken covers every way a cookie can fail to parse.  Callers treat
// it uniformly: clear the cookie and proceed anonymous.
var errBadToken = errors.New("invalid session token")

// newToken signs the session payload as an HS256 JWT.  Claims: sub (user
// id), email, role, btk (backend bearer token), sid, exp, iat.
func newToken(secret []byte, p payload, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(p.Identity.ID, 10),
		"email": p.Identity.Email,
		"role":  string(p.Identity.Role),
		"btk":   p.BackendToken,
		"sid":   p.SID,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// parseToken validates a session cookie value and reconstructs its
// payload.  Any defect (wrong algorithm, bad signature, expiry, missing
// or malformed claims) yields errBadToken; the caller must not
// distinguish, a corrupt session is simply no session.
func parseToken(secret []byte, raw string) (payload, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errBadToken
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return payload{}, errBadToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return payload{}, errBadToken
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return payload{}, errBadToken
	}
	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)
	role, ok := model.ParseRole(roleStr)
	if !ok {
		return payload{}, errBadToken
	}
	btk, _ := claims["btk"].(string)
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return payload{}, errBadToken
	}

	return payload{
		Identity:     model.Identity{ID: id, Email: email, Role: role},
		BackendToken: btk,
		SID:          sid,
	}, nil
}
