package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/api"
	"github.com/goticket/goticket-web/internal/booking"
	"github.com/goticket/goticket-web/internal/guard"
	"github.com/goticket/goticket-web/internal/model"
	"github.com/goticket/goticket-web/internal/session"
)

// loginFallback is shown when the backend rejects a login without saying
// why.  When the backend does supply a message ("Account not approved"),
// that message is shown verbatim instead.
const loginFallback = "Invalid credentials or account not approved by admin."

// AuthHandler serves the login and registration pages and tears sessions
// down on logout.
type AuthHandler struct {
	Sessions *session.Store
	Flows    *booking.Registry
	API      *api.Client
}

func NewAuthHandler(s *session.Store, flows *booking.Registry, client *api.Client) *AuthHandler {
	return &AuthHandler{Sessions: s, Flows: flows, API: client}
}

// LoginPage renders the login form.  A logged-in visitor is sent straight
// to their role's home view.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if ident, ok := session.Current(c); ok {
		return c.Redirect(http.StatusSeeOther, guard.HomePath(ident.Role))
	}
	data := page(c, "Sign in")
	data["Email"] = ""
	return c.Render(http.StatusOK, "login.html", data)
}

// Login handles the credentials post.  Failures re-render the form inline
// with the backend's message; there is no redirect on failure.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if email == "" || password == "" {
		data := page(c, "Sign in")
		data["Err"] = "Email and password are required."
		data["Email"] = email
		return c.Render(http.StatusBadRequest, "login.html", data)
	}

	ident, err := h.Sessions.Login(c, email, password)
	if err != nil {
		data := page(c, "Sign in")
		data["Err"] = api.UserMessage(err, loginFallback)
		data["Email"] = email
		return c.Render(http.StatusUnauthorized, "login.html", data)
	}
	return c.Redirect(http.StatusSeeOther, guard.HomePath(ident.Role))
}

// RegisterPage renders the account creation form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	data := page(c, "Create account")
	data["Name"] = ""
	data["Email"] = ""
	data["Role"] = string(model.RoleUser)
	return c.Render(http.StatusOK, "register.html", data)
}

// Register creates an account.  Only USER and MANAGER are self-service;
// manager accounts stay pending until an admin approves them, which the
// success message spells out.
func (h *AuthHandler) Register(c echo.Context) error {
	req := api.RegisterRequest{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
		Role:     strings.ToUpper(strings.TrimSpace(c.FormValue("role"))),
	}
	data := page(c, "Create account")
	data["Name"] = req.Name
	data["Email"] = req.Email
	data["Role"] = req.Role

	if req.Name == "" || req.Email == "" || req.Password == "" {
		data["Err"] = "Name, email and password are required."
		return c.Render(http.StatusBadRequest, "register.html", data)
	}
	if req.Role != string(model.RoleUser) && req.Role != string(model.RoleManager) {
		data["Err"] = "Please choose a valid account type."
		return c.Render(http.StatusBadRequest, "register.html", data)
	}

	if err := h.API.Register(c.Request().Context(), req); err != nil {
		data["Err"] = api.UserMessage(err, "Registration failed. Please try again.")
		return c.Render(http.StatusBadGateway, "register.html", data)
	}

	msg := "Registration successful. You can sign in now."
	if req.Role == string(model.RoleManager) {
		msg = "Registration successful. Manager accounts require admin approval before sign in."
	}
	return redirectMsg(c, guard.LoginPath, msg)
}

// Logout clears the session cookie and drops any live booking workflow.
// Safe to hit while already logged out.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid := session.ID(c); sid != "" {
		h.Flows.Drop(sid)
	}
	h.Sessions.Logout(c)
	return c.Redirect(http.StatusSeeOther, guard.LoginPath)
}
