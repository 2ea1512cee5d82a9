package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/askdb/askdb/internal/answer"
	"github.com/askdb/askdb/internal/config"
	"github.com/askdb/askdb/internal/database"
	"github.com/askdb/askdb/internal/executor"
	"github.com/askdb/askdb/internal/guardrail"
	"github.com/askdb/askdb/internal/llm"
	"github.com/askdb/askdb/internal/nl2sql"
	"github.com/askdb/askdb/internal/observability"
	"github.com/askdb/askdb/internal/repl"
	"github.com/askdb/askdb/internal/schema"
)

func main() {
	// Local development keeps credentials in .env; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv("askdb")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stderr)

	dbCfg := database.Config{
		Driver:   cfg.Database.Driver,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
	}

	introspector, err := schema.NewIntrospector(dbCfg)
	if err != nil {
		logger.Error("failed to initialize schema introspector", slog.Any("error", err))
		os.Exit(1)
	}

	chatClient, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
	})
	if err != nil {
		logger.Error("failed to initialize model client", slog.Any("error", err))
		os.Exit(1)
	}

	deps := repl.Dependencies{
		Logger:     logger,
		Schema:     introspector,
		Translator: nl2sql.NewChatTranslator(chatClient),
		Guard:      guardrail.New(cfg.Pipeline.DefaultRowLimit),
		Executor:   executor.New(dbCfg),
		Summarizer: answer.NewChatSummarizer(chatClient, cfg.Pipeline.PreviewRows),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting session",
		slog.String("database", cfg.Database.Name),
		slog.String("driver", cfg.Database.Driver),
		slog.String("model", chatClient.Model()))

	err = repl.Run(ctx, deps, repl.Options{
		DatabaseName: cfg.Database.Name,
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("session failed", slog.Any("error", err))
		os.Exit(1)
	}
}
