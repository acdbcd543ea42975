package api

import (
	"context"
	"net/http"
)

// AuthResult is the login response.  Token is optional: older backend
// builds authenticate by session and omit it, in which case requests go
// out without an Authorization header.
type AuthResult struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Email   string `json:"email"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a new account.  Manager accounts start
// unapproved; the backend rejects their logins until an admin approves.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Login exchanges credentials for an identity descriptor and optional
// bearer token.  Bad credentials and unapproved accounts come back as an
// *Error whose Message is the backend's own text.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Register creates an account.  The backend returns no body of interest;
// success means the account exists (possibly pending approval).
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", "", req, nil)
}
