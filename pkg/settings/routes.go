package settings

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, gate *Gate) {
	h := &handler{gate: gate}

	g := e.Group("/settings")
	g.GET("", h.retrieve)
	g.PUT("/capability", h.updateCapability)
	g.PUT("/api-key", h.updateAPIKey)
}
