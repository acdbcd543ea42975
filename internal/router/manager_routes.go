package router

import (
	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/guard"
	"github.com/goticket/goticket-web/internal/model"
)

// registerManager wires the manager dashboard and event CRUD, all behind
// the MANAGER gate.
func registerManager(e *echo.Echo, d Deps) {
	m := e.Group("/manager", guard.Require(model.RoleManager))
	m.GET("", d.Manager.Dashboard)
	m.GET("/profile", d.User.ProfilePage)
	m.POST("/profile/update", d.User.UpdateProfile)
	m.GET("/events", d.Manager.ManageEvents)
	m.GET("/create-event", d.Manager.CreateEventPage)
	m.POST("/create-event", d.Manager.CreateEvent)
	m.GET("/edit-event/:id", d.Manager.EditEventPage)
	m.POST("/edit-event/:id", d.Manager.EditEvent)
	m.POST("/events/:id/delete", d.Manager.DeleteEvent)
}
