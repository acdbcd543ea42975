package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness endpoint for load balancers and monitoring.  It
// deliberately does not probe the backend: this process being up is a
// separate question from the backend being up.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
