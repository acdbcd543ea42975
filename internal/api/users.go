package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goticket/goticket-web/internal/model"
)

// GetUser fetches one user by id.
func (c *Client) GetUser(ctx context.Context, token string, id int64) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail looks a user up by email address.
func (c *Client) GetUserByEmail(ctx context.Context, token, email string) (*model.User, error) {
	var u model.User
	path := "/api/users/by-email?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserRequest carries the editable profile fields.  Password is
// omitted from the payload when left blank.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// UpdateUser saves profile changes and returns the updated record.
func (c *Client) UpdateUser(ctx context.Context, token string, id int64, req UpdateUserRequest) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/users/%d", id), token, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
