package main

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/makeasinger/songgen/internal/config"
	"github.com/makeasinger/songgen/internal/handler"
	"github.com/makeasinger/songgen/pkg/response"
)

func setupApp(cfg *config.Config, log *slog.Logger, songHandler *handler.SongHandler, healthHandler *handler.HealthHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: response.ErrorHandler,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	logFormat := "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n"
	if strings.EqualFold(cfg.Server.LogLevel, "debug") {
		logFormat = "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid} ${queryParams} ${reqHeaders}\n"
		log.Debug("Debug access logging enabled")
	}
	app.Use(logger.New(logger.Config{
		Format: logFormat,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Health)

	api := app.Group("/api")
	api.Post("/generate-song", songHandler.Generate)

	return app
}
