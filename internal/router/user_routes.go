package router

import (
	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/guard"
	"github.com/goticket/goticket-web/internal/model"
)

// registerUser wires the user dashboard and the booking pages.  The
// booking page admits every role, mirroring that managers and admins may
// also book seats; the dashboard itself is user-only.
func registerUser(e *echo.Echo, d Deps) {
	u := e.Group("", guard.Require(model.RoleUser))
	u.GET("/dashboard", d.User.Dashboard)
	u.GET("/profile", d.User.ProfilePage)
	u.POST("/profile/update", d.User.UpdateProfile)

	b := e.Group("/book", guard.Require(model.RoleUser, model.RoleManager, model.RoleAdmin))
	b.GET("/:id", d.Booking.Show)
	b.POST("/:id/toggle", d.Booking.Toggle)
	b.POST("/:id/confirm", d.Booking.Confirm)
	b.POST("/:id/tickets", d.Booking.QuickBook)
}
