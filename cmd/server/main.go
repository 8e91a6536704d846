package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goaltrackhq/goaltrack-api/internal/config"
	"github.com/goaltrackhq/goaltrack-api/internal/database"
	"github.com/goaltrackhq/goaltrack-api/internal/handlers"
	"github.com/goaltrackhq/goaltrack-api/internal/logger"
	"github.com/goaltrackhq/goaltrack-api/internal/routes"
	"github.com/goaltrackhq/goaltrack-api/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	if err := logger.Init(cfg.LogDir); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	if err := database.Connect(cfg); err != nil {
		logger.L.Fatalw("database connect failed", "err", err)
	}
	if err := database.Migrate(); err != nil {
		logger.L.Fatalw("database migrate failed", "err", err)
	}

	handlers.Setup(store.New(database.DB))

	app := fiber.New(fiber.Config{
		AppName: "goaltrack-api",
	})
	app.Use(recover.New())
	app.Use(cors.New())

	routes.Setup(app)

	go func() {
		logger.L.Infow("server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.L.Fatalw("server start failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L.Info("shutting down")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logger.L.Errorw("shutdown failed", "err", err)
	}
}
