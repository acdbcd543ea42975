package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goticket/goticket-web/internal/model"
)

// ListAllUsers returns every account on the platform.  Admin only; the
// backend enforces the privilege, this client just forwards the token.
func (c *Client) ListAllUsers(ctx context.Context, token string) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/allUsers", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddUserRequest creates an account directly, bypassing registration
// approval.
type AddUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AddUser creates an account on behalf of an admin.
func (c *Client) AddUser(ctx context.Context, token string, req AddUserRequest) error {
	return c.do(ctx, http.MethodPost, "/api/admin/addUser", token, req, nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/delete/%d", id), token, nil, nil)
}
