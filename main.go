package main

import (
	"context"
	"fmt"
	"time"

	"msc-booking/config"
	"msc-booking/database"
	"msc-booking/database/seeders"
	"msc-booking/logger"
	"msc-booking/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		BodyLimit:    1 * 1024 * 1024, // 1MB body limit, the API is JSON only
	})

	store, err := database.InitStorage(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", err)
		return
	}
	defer store.Close()

	if err := seeders.SeedDefaultAdmin(context.Background(), store, cfg); err != nil {
		logger.Error("Failed to seed default admin", err)
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	dispatcher := routes.SetupRoutes(app, store, cfg)
	defer dispatcher.Close()

	addr := fmt.Sprintf("%s:%d", cfg.AppHost, cfg.AppPort)
	logger.Success("Server is running on " + addr)
	if err := app.Listen(addr); err != nil {
		logger.Error("Server stopped", err)
	}
}
