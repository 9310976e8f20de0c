// contractmask serves the masking pipeline over HTTP.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/codeready-toolchain/contractmask/pkg/api"
	"github.com/codeready-toolchain/contractmask/pkg/app"
	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/database"
	"github.com/codeready-toolchain/contractmask/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configDir := flag.String("config-dir",
		getEnv("CONFIG_DIR", "./deploy/config"),
		"Path to configuration directory")
	ledger := flag.Bool("ledger",
		getEnv("RUN_LEDGER", "") == "true",
		"Connect to the run ledger database and report it in /health")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	envErr := godotenv.Load(envPath)

	slog.SetDefault(app.NewLogger(os.Stderr, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL")))
	if envErr != nil {
		slog.Warn("Could not load .env file, continuing with existing environment",
			"path", envPath, "error", envErr)
	} else {
		slog.Info("Loaded environment", "path", envPath)
	}

	ctx := context.Background()

	cfg, err := config.Initialize(ctx, *configDir)
	if err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}
	httpPort := getEnv("HTTP_PORT", cfg.Server.HTTPPort)

	slog.Info("Starting contractmask",
		"version", version.Full(),
		"http_port", httpPort,
		"config_dir", *configDir)

	pipeline, err := app.NewPipeline(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize masking pipeline", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			slog.Error("Error closing tagger", "error", err)
		}
	}()

	var db *sql.DB
	if *ledger {
		dbConfig, err := database.LoadConfigFromEnv()
		if err != nil {
			slog.Error("Failed to load database config", "error", err)
			os.Exit(1)
		}
		dbClient, err := database.NewClient(ctx, dbConfig)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				slog.Error("Error closing database client", "error", err)
			}
		}()
		db = dbClient.DB()
		slog.Info("Connected to PostgreSQL database")
	}

	server := api.NewServer(cfg, pipeline.Service, pipeline.Segmenter, db)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(":" + httpPort); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
	slog.Info("contractmask stopped")
}
