package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/api"
	"github.com/goticket/goticket-web/internal/session"
)

// HomeHandler serves the public landing page.
type HomeHandler struct {
	API *api.Client
}

func NewHomeHandler(client *api.Client) *HomeHandler {
	return &HomeHandler{API: client}
}

// Landing lists upcoming events for visitors.  A backend failure here
// degrades to an empty listing rather than an error page; the landing
// page must render for anonymous visitors even when the platform is
// having a bad day.
func (h *HomeHandler) Landing(c echo.Context) error {
	data := page(c, "GoTicket")
	events, err := h.API.ListEvents(c.Request().Context(), session.Token(c))
	if err == nil {
		data["Events"] = events
	}
	return c.Render(http.StatusOK, "landing.html", data)
}
