// Package main implements the entry point for the member roster API
// server, which manages the course roster persisted as an XML document.
package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/shaxn3/WSTFinalProject/internal/config"
	"github.com/shaxn3/WSTFinalProject/internal/platform/logger"
)

func main() {
	// A .env file is a development convenience; absence is not an error.
	_ = godotenv.Load()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(); err != nil {
		slog.Error("server terminated", "error", err)
		log.Fatalf("Server terminated: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// application components together.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_path", cfg.Store.Path,
		"store_locking", cfg.Store.Locking)

	return newApplication(cfg, appLogger), nil
}
