package main

import (
	"errors"
	"net/http"

	"github.com/kiasiliventures/thesmokehouse/internal/middleware"
	"github.com/kiasiliventures/thesmokehouse/internal/model"
	"github.com/kiasiliventures/thesmokehouse/internal/services"

	"github.com/labstack/echo/v4"
)

func registerAdminRoutes(g *echo.Group, os *services.OrderService) {

	p := g.Group("/admin/orders")

	p.GET("", func(c echo.Context) error {
		orders, err := os.ListOrders(c.Request().Context(), middleware.AdminCredential(c))
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
		}
		if orders == nil {
			orders = []model.Order{}
		}
		return c.JSON(http.StatusOK, orders)
	})

	p.PATCH("/:id", func(c echo.Context) error {
		var body struct {
			Status model.OrderStatus `json:"status"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status"})
		}

		order, err := os.SetStatus(c.Request().Context(), c.Param("id"), body.Status, middleware.AdminCredential(c))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnauthorized):
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			case errors.Is(err, services.ErrInvalidStatus):
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status"})
			case errors.Is(err, services.ErrInvalidTransition):
				return c.JSON(http.StatusConflict, map[string]string{"error": "Invalid status transition"})
			case errors.Is(err, services.ErrOrderNotFound):
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
			default:
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update status"})
			}
		}
		return c.JSON(http.StatusOK, order)
	})
}
