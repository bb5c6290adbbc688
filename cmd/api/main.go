package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"goresid/adapters/api"
	"goresid/adapters/model"
	"goresid/internal"
	"goresid/internal/config"
	apperrors "goresid/internal/errors"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	err = run(cfg, logger)
	if err != nil {
		logger.Error("%v", err)
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *internal.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	models, scoring, err := model.NewFileRegistry(cfg.Registry).Load(ctx)
	if err != nil {
		return apperrors.Wrapf(err, "load registry %s", cfg.Registry)
	}
	logger.Info("Loaded %d models from %s", len(models), cfg.Registry)

	server := api.NewFromConfig(cfg, models, scoring, logger)
	if err := server.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		return apperrors.Wrap(err, "server stopped")
	}
	return nil
}
