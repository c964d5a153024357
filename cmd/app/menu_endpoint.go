package main

import (
	"net/http"

	"github.com/kiasiliventures/thesmokehouse/internal/services"

	"github.com/labstack/echo/v4"
)

func registerMenuRoutes(g *echo.Group, ms *services.MenuService) {

	g.GET("/menu", func(c echo.Context) error {
		items, err := ms.GetMenu(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch menu"})
		}
		return c.JSON(http.StatusOK, items)
	})
}
