package router

import (
	"github.com/labstack/echo/v4"

	"github.com/goticket/goticket-web/internal/guard"
	"github.com/goticket/goticket-web/internal/model"
)

// registerAdmin wires platform administration behind the ADMIN gate.
func registerAdmin(e *echo.Echo, d Deps) {
	a := e.Group("/admin", guard.Require(model.RoleAdmin))
	a.GET("", d.Admin.Home)
	a.GET("/users", d.Admin.Users)
	a.GET("/managers", d.Admin.Managers)
	a.POST("/users/add", d.Admin.AddUser)
	a.POST("/users/:id/delete", d.Admin.DeleteUser)
	a.GET("/profile", d.User.ProfilePage)
	a.POST("/profile/update", d.User.UpdateProfile)
}
