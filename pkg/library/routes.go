package library

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, store *Store) {
	h := &handler{store: store}

	g := e.Group("/library")
	g.GET("", h.list)
	g.GET("/stats", h.stats)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create)
	g.POST("/accept", h.accept)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.deleteItem)
}
