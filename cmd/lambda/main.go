package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-agent/internal/config"
	"github.com/dvloznov/finance-agent/internal/infra"
	"github.com/dvloznov/finance-agent/internal/logger"
	"github.com/dvloznov/finance-agent/internal/lookup"
)

func main() {
	if err := run(context.Background()); err != nil {
		log := logger.NewFromConfig("info", logger.FormatJSON)
		log.Error().Err(err).Msg("Transaction lookup handler failed to start")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewFromConfig(cfg.LogLevel, cfg.LogFormat)

	// Built once per execution environment and reused across invocations.
	handler, closeStore, err := newHandler(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	log.Info().
		Str("backend", cfg.StoreBackend).
		Str("table", cfg.TableName).
		Msg("Transaction lookup handler ready")

	lambda.Start(handler.Handle)
	return nil
}

// newHandler opens the configured store and wraps it in the lookup handler.
// The returned close function is always non-nil.
func newHandler(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*lookup.Handler, func() error, error) {
	store, closeStore, err := infra.OpenStore(ctx, cfg)
	if err != nil {
		return nil, closeStore, fmt.Errorf("opening %s transaction store: %w", cfg.StoreBackend, err)
	}
	return lookup.NewHandler(store, log), closeStore, nil
}
