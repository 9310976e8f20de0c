// contractmask-batch masks a directory of extracted contract texts and writes
// one id,original,masked CSV per input file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/codeready-toolchain/contractmask/pkg/app"
	"github.com/codeready-toolchain/contractmask/pkg/batch"
	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/database"
	"github.com/codeready-toolchain/contractmask/pkg/runlog"
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
	inputDir := flag.String("input", "", "Directory of extracted .txt files")
	outputDir := flag.String("output", "", "Directory for the CSV files (defaults to -input)")
	workers := flag.Int("workers", 0, "Concurrent documents (overrides batch.workers)")
	ledger := flag.Bool("ledger",
		getEnv("RUN_LEDGER", "") == "true",
		"Record the run in the ledger database")
	flag.Parse()

	envPath := filepath.Join(*configDir, ".env")
	envErr := godotenv.Load(envPath)
	slog.SetDefault(app.NewLogger(os.Stderr, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL")))
	if envErr != nil {
		slog.Debug("No .env file loaded", "path", envPath, "error", envErr)
	}

	if *inputDir == "" {
		fmt.Fprintln(os.Stderr, "usage: contractmask-batch -input <dir> [-output <dir>]")
		os.Exit(2)
	}
	if *outputDir == "" {
		*outputDir = *inputDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, *configDir, *inputDir, *outputDir, *workers, *ledger); err != nil {
		slog.Error("Batch run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configDir, inputDir, outputDir string, workers int, ledger bool) error {
	cfg, err := config.Initialize(ctx, configDir)
	if err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	if workers > 0 {
		cfg.Batch.Workers = workers
	}

	pipeline, err := app.NewPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			slog.Error("Error closing tagger", "error", err)
		}
	}()

	var recorder batch.Recorder = batch.NopRecorder{}
	if ledger {
		dbConfig, err := database.LoadConfigFromEnv()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}
		dbClient, err := database.NewClient(ctx, dbConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer dbClient.Close()
		recorder = runlog.NewStore(dbClient.DB())
	}

	docs, err := app.ReadDocuments(inputDir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		slog.Warn("No .txt files found", "input", inputDir)
		return nil
	}

	pool := batch.NewPool(pipeline.Service, cfg.Batch.Workers, recorder)
	report, runErr := pool.Run(ctx, docs)
	if report == nil {
		return runErr
	}
	if err := app.WriteReport(outputDir, report, cfg.Batch.OutputBOM); err != nil {
		return err
	}
	return runErr
}
