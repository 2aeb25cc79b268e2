package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/makeasinger/songgen/internal/client"
	"github.com/makeasinger/songgen/internal/config"
	"github.com/makeasinger/songgen/internal/handler"
	"github.com/makeasinger/songgen/internal/service"
	applog "github.com/makeasinger/songgen/pkg/logger"
)

func main() {
	// Local development reads a .env file; in containers the environment is used as-is
	envFileLoaded := godotenv.Load() == nil

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := applog.New(cfg.Server.LogLevel, false, cfg.Server.Env)
	slog.SetDefault(log)
	if !envFileLoaded {
		log.Debug("No .env file found, using environment variables")
	}

	// RunPod credentials are checked per request so the server still starts without them
	runpodClient := client.NewRunPodClient(&cfg.RunPod, log)
	if !runpodClient.IsConfigured() {
		log.Warn("RunPod not configured, song generation will return 500",
			slog.Bool("api_key_set", cfg.RunPod.APIKey != ""),
			slog.Bool("endpoint_id_set", cfg.RunPod.EndpointID != ""),
		)
	}

	// Initialize services
	songService := service.NewSongService(runpodClient, validator.New(), log)

	// Initialize handlers
	songHandler := handler.NewSongHandler(songService, log)
	healthHandler := handler.NewHealthHandler(songService)

	app := setupApp(cfg, log, songHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("Server shutdown error", slog.Any("error", err))
		}
	}()

	addr := ":" + cfg.Server.Port
	log.Info("Server starting", slog.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Error("Server error", slog.Any("error", err))
		os.Exit(1)
	}
}
