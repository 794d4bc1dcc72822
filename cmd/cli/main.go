package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-agent/internal/config"
	"github.com/dvloznov/finance-agent/internal/infra"
	"github.com/dvloznov/finance-agent/internal/logger"
	"github.com/dvloznov/finance-agent/internal/lookup"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "invoke":
		runInvoke(log)
	case "lookup":
		runLookup(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Transaction Lookup CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  invoke    Run an agent invocation event through the handler and print the envelope")
	fmt.Println("  lookup    Print the transaction text for one user")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nThe store backend is configured through the environment (STORE_BACKEND, ...).")
	fmt.Println("Run 'cli <command> -h' for more information on a command.")
}

// newHandler loads configuration and opens the configured store.
func newHandler(ctx context.Context, log zerolog.Logger, envFile string) (*lookup.Handler, func() error) {
	cfg, err := config.LoadWithDotenv(envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	log = log.Level(logger.NewFromConfig(cfg.LogLevel, logger.FormatConsole).GetLevel())

	store, closeStore, err := infra.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Failed to open transaction store")
	}
	return lookup.NewHandler(store, log), closeStore
}

func runInvoke(log zerolog.Logger) {
	fs := flag.NewFlagSet("invoke", flag.ExitOnError)
	eventPath := fs.String("event", "-", "Path to the event JSON file, or - for stdin")
	envFile := fs.String("env-file", ".env", "Optional .env file")
	fs.Parse(os.Args[2:])

	var (
		raw []byte
		err error
	)
	if *eventPath == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(*eventPath)
	}
	if err != nil {
		log.Fatal().Err(err).Str("event", *eventPath).Msg("Failed to read event")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	ctx = logger.WithRequestID(ctx, uuid.NewString())

	handler, closeStore := newHandler(ctx, log, *envFile)
	defer closeStore()

	resp := handler.Respond(ctx, raw)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		log.Fatal().Err(err).Msg("Failed to write response")
	}
}

func runLookup(log zerolog.Logger) {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	userID := fs.String("user", "", "User identifier (partition key value)")
	envFile := fs.String("env-file", ".env", "Optional .env file")
	fs.Parse(os.Args[2:])

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	handler, closeStore := newHandler(ctx, log, *envFile)
	defer closeStore()

	text, err := handler.Lookup(ctx, *userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", *userID).Msg("Lookup failed")
		fmt.Println(lookup.Body(err))
		os.Exit(1)
	}
	fmt.Println(text)
}
