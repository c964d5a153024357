package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/kiasiliventures/thesmokehouse/internal/model"
	"github.com/kiasiliventures/thesmokehouse/internal/services"

	"github.com/labstack/echo/v4"
)

// clientIP takes the first element of X-Forwarded-For, falling back to the
// socket address the proxy saw.
func clientIP(c echo.Context) string {
	if fwd := c.Request().Header.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if ip := c.RealIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService) {

	p := g.Group("/orders")

	p.POST("", func(c echo.Context) error {
		var req model.CreateOrderRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order payload"})
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Phone = strings.TrimSpace(req.Phone)
		req.Notes = strings.TrimSpace(req.Notes)
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order payload"})
		}

		receipt, err := os.Submit(c.Request().Context(), req, clientIP(c))
		if err != nil {
			var limited *services.RateLimitedError
			switch {
			case errors.As(err, &limited):
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": limited.Reason})
			case errors.Is(err, services.ErrItemsUnavailable):
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "One or more menu items are unavailable"})
			case errors.Is(err, services.ErrInvalidTotal):
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order total"})
			case errors.Is(err, services.ErrTokenGeneration):
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not generate secure order token"})
			default:
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create order"})
			}
		}

		return c.JSON(http.StatusOK, receipt)
	})

	p.GET("/:public_token", func(c echo.Context) error {
		order, err := os.GetByPublicToken(c.Request().Context(), c.Param("public_token"))
		if err != nil {
			// not-found and store failures both collapse to a generic 404 so
			// token probing learns nothing
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
		}
		return c.JSON(http.StatusOK, order)
	})
}
