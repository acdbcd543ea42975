package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/api"
	"github.com/goticket/goticket-web/internal/model"
	"github.com/goticket/goticket-web/internal/session"
)

// AdminHandler serves the admin pages: platform-wide user management,
// split into a regular-users view and a managers view.
type AdminHandler struct {
	API *api.Client
}

func NewAdminHandler(client *api.Client) *AdminHandler {
	return &AdminHandler{API: client}
}

// Home is the admin landing view.
func (h *AdminHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_home.html", page(c, "Admin"))
}

// Users lists USER accounts.
func (h *AdminHandler) Users(c echo.Context) error {
	return h.userList(c, model.RoleUser, "Users", "/admin/users")
}

// Managers lists MANAGER accounts, approved or pending.
func (h *AdminHandler) Managers(c echo.Context) error {
	return h.userList(c, model.RoleManager, "Managers", "/admin/managers")
}

func (h *AdminHandler) userList(c echo.Context, role model.Role, title, action string) error {
	data := page(c, title)
	data["Action"] = action
	data["Role"] = string(role)

	all, err := h.API.ListAllUsers(c.Request().Context(), session.Token(c))
	if err != nil {
		data["Err"] = api.UserMessage(err, "Could not load users.")
		data["Users"] = []model.User{}
		return c.Render(http.StatusBadGateway, "admin_users.html", data)
	}
	users := make([]model.User, 0, len(all))
	for _, u := range all {
		if r, ok := model.ParseRole(u.Role); ok && r == role {
			users = append(users, u)
		}
	}
	data["Users"] = users
	return c.Render(http.StatusOK, "admin_users.html", data)
}

// AddUser creates an account directly, without the registration approval
// step.  The role comes from the posting page.
func (h *AdminHandler) AddUser(c echo.Context) error {
	back := c.FormValue("back")
	if back == "" {
		back = "/admin/users"
	}
	req := api.AddUserRequest{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
		Role:     strings.ToUpper(strings.TrimSpace(c.FormValue("role"))),
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return redirectErr(c, back, "Name, email and password are required.")
	}
	if _, ok := model.ParseRole(req.Role); !ok {
		return redirectErr(c, back, "Please choose a valid role.")
	}
	if err := h.API.AddUser(c.Request().Context(), session.Token(c), req); err != nil {
		return redirectErr(c, back, api.UserMessage(err, "Could not add the user."))
	}
	return redirectMsg(c, back, "User added.")
}

// DeleteUser removes an account.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return renderError(c, http.StatusBadRequest, "Invalid user ID.")
	}
	back := c.FormValue("back")
	if back == "" {
		back = "/admin/users"
	}
	if err := h.API.DeleteUser(c.Request().Context(), session.Token(c), id); err != nil {
		return redirectErr(c, back, api.UserMessage(err, "Could not delete the user."))
	}
	return redirectMsg(c, back, "User deleted.")
}
