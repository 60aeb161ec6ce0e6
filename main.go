package main

import (
	"context"
	"log/slog"
	"os"

	"socialpulse/pipeline/internal/app"
	"socialpulse/pipeline/internal/config"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := app.Bootstrap(cfg)
	if err != nil {
		slog.Error("failed to bootstrap", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := app.Run(context.Background(), cfg, db); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
