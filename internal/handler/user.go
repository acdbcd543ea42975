package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/api"
	"github.com/goticket/goticket-web/internal/session"
)

// UserHandler serves the user dashboard and the profile page shared by all
// three roles.
type UserHandler struct {
	API *api.Client
}

func NewUserHandler(client *api.Client) *UserHandler {
	return &UserHandler{API: client}
}

// Dashboard lists bookable events for the signed-in user.
func (h *UserHandler) Dashboard(c echo.Context) error {
	data := page(c, "Dashboard")
	events, err := h.API.ListEvents(c.Request().Context(), session.Token(c))
	if err != nil {
		data["Err"] = api.UserMessage(err, "Could not load events. Please try again.")
	}
	data["Events"] = events
	return c.Render(http.StatusOK, "dashboard.html", data)
}

// ProfilePage shows the editable profile of the signed-in principal.  A
// session that points at a user the backend no longer knows gets a
// re-login prompt, not a crash.
func (h *UserHandler) ProfilePage(c echo.Context) error {
	ident := mustIdentity(c)
	user, err := h.API.GetUser(c.Request().Context(), session.Token(c), ident.ID)
	if err != nil {
		if api.IsNotFound(err) || api.IsUnauthorized(err) {
			return redirectErr(c, "/login", "Your session is no longer valid. Please sign in again.")
		}
		return renderError(c, http.StatusBadGateway, api.UserMessage(err, "Could not load your profile."))
	}
	data := page(c, "Profile")
	data["User"] = user
	data["Action"] = c.Request().URL.Path + "/update"
	return c.Render(http.StatusOK, "profile.html", data)
}

// UpdateProfile saves name/email changes and an optional new password.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ident := mustIdentity(c)
	req := api.UpdateUserRequest{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}
	if req.Name == "" || req.Email == "" {
		return redirectErr(c, profilePath(c), "Name and email are required.")
	}

	if _, err := h.API.UpdateUser(c.Request().Context(), session.Token(c), ident.ID, req); err != nil {
		return redirectErr(c, profilePath(c), api.UserMessage(err, "Profile update failed. Please try again."))
	}
	return redirectMsg(c, profilePath(c), "Profile updated.")
}

// profilePath returns the role-specific profile URL the form posted from.
func profilePath(c echo.Context) string {
	p := c.Request().URL.Path
	return strings.TrimSuffix(p, "/update")
}
