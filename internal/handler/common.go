package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/model"
	"github.com/goticket/goticket-web/internal/session"
)

// page assembles the data every template expects: the current identity (if
// any) plus flash and error messages carried across redirects as query
// parameters.
func page(c echo.Context, title string) echo.Map {
	ident, ok := session.Current(c)
	return echo.Map{
		"Title":    title,
		"Identity": ident,
		"NavRole":  ident.Role.String(),
		"LoggedIn": ok,
		"Msg":      c.QueryParam("msg"),
		"Err":      c.QueryParam("err"),
	}
}

// redirectMsg redirects with a flash message.
func redirectMsg(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusSeeOther, path+"?msg="+url.QueryEscape(msg))
}

// redirectErr redirects with an error message.
func redirectErr(c echo.Context, path, msg string) error {
	return c.Redirect(http.StatusSeeOther, path+"?err="+url.QueryEscape(msg))
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// mustIdentity returns the session identity.  Only called behind the
// route guard, where a session is known to exist.
func mustIdentity(c echo.Context) model.Identity {
	ident, _ := session.Current(c)
	return ident
}

// renderError shows the terminal error view with the given status.
func renderError(c echo.Context, status int, msg string) error {
	data := page(c, "Something went wrong")
	data["Message"] = msg
	return c.Render(status, "error.html", data)
}
