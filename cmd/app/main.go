package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/kiasiliventures/thesmokehouse/internal/config"
	"github.com/kiasiliventures/thesmokehouse/internal/db"
	"github.com/kiasiliventures/thesmokehouse/internal/middleware"
	"github.com/kiasiliventures/thesmokehouse/internal/repository"
	"github.com/kiasiliventures/thesmokehouse/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	// ======================
	// CONFIG
	// ======================
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ======================
	// INFRA
	// ======================
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatal(err)
	}
	if cfg.Orders.SeedMenu {
		if err := db.SeedMenu(ctx, pool); err != nil {
			log.Fatal(err)
		}
	}

	// ======================
	// REPOSITORIES
	// ======================
	menuRepo := repository.NewMenuRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	// ======================
	// SERVICES
	// ======================
	limiter := services.NewRateLimiter()
	adminCheck := middleware.NewAdminCheck(cfg.Admin.Password)
	menuSvc := services.NewMenuService(menuRepo, logger)
	orderSvc := services.NewOrderService(menuRepo, orderRepo, limiter, adminCheck, cfg.Orders.StrictStatusFlow, logger)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Validator = newRequestValidator()

	api := e.Group("/smokehouse")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerMenuRoutes(api, menuSvc)
	registerOrderRoutes(api, orderSvc)
	registerAdminRoutes(api, orderSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + cfg.Server.Port))
}
