package search

import (
	"github.com/bookverse/bookverse/pkg/settings"
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, searchService *Service, gate *settings.Gate) {
	h := &handler{
		searchService: searchService,
		gate:          gate,
	}

	g := e.Group("/search")
	g.GET("/books/:work_id/description", h.describe)
	g.GET("/:media_type", h.search)
}
