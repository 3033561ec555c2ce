package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/config"
	"github.com/mynameisDevendra/KURSnTbOT2/internal/gemini"
	"github.com/mynameisDevendra/KURSnTbOT2/internal/handler"
	"github.com/mynameisDevendra/KURSnTbOT2/internal/repository"
	"github.com/mynameisDevendra/KURSnTbOT2/internal/service"
	"github.com/mynameisDevendra/KURSnTbOT2/internal/telegram_bot"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:           "bot",
		Short:         "Railway material log and knowledge bot for Telegram",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "configs/config.yml", "path to the YAML config file (optional)")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Bot is initializing...")

	// Missing secrets degrade the affected path instead of stopping the process.
	for _, key := range cfg.Validate() {
		logger.Warn("Configuration value missing", zap.String("key", key))
	}

	store, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	var model service.ModelClient
	geminiClient, err := gemini.NewClient(gemini.Config{
		APIKey:      cfg.Gemini.APIKey,
		ModelName:   cfg.Gemini.ModelName,
		RelaxSafety: cfg.Gemini.RelaxSafety,
	}, logger)
	if err != nil {
		logger.Error("Gemini client unavailable", zap.Error(err))
		model = gemini.Unavailable{Reason: err.Error()}
	} else {
		defer geminiClient.Close()
		model = geminiClient
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handler.NewRouter(handler.NewHandler(logger)),
	}
	go func() {
		logger.Info("Liveness server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Liveness server failed", zap.Error(err))
		}
	}()

	api, err := telegram_bot.NewAPI(cfg.Telegram.Token, logger)
	if err != nil {
		logger.Error("Telegram bot unavailable, serving liveness only", zap.Error(err))
		<-ctx.Done()
	} else {
		deliverer := telegram_bot.NewDeliverer(api, logger)
		dispatcher := service.NewDispatcher(model, store, deliverer, cfg.Links(), service.Options{
			ReplyInThread: *cfg.Telegram.ReplyInThread,
		}, logger)
		bot := telegram_bot.NewBot(api, dispatcher, cfg.Telegram.PollTimeout, logger)

		logger.Info("Bot is running")
		if err := bot.Start(ctx); err != nil {
			logger.Error("Telegram bot failed", zap.Error(err))
		}
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Bot stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.RowAppender, func()) {
	noop := func() {}

	switch cfg.Store.Type {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Store.SQLitePath), 0o755); err != nil {
			logger.Error("Failed to create data directory", zap.Error(err))
		}
		repo, err := repository.NewSQLiteRepository(cfg.Store.SQLitePath, logger)
		if err != nil {
			logger.Error("SQLite store unavailable", zap.Error(err))
			return repository.Unavailable{Reason: err.Error()}, noop
		}
		return repo, func() { _ = repo.Close() }

	case "sheets":
		if cfg.Store.CredentialsJSON == "" {
			return repository.Unavailable{Reason: "GOOGLE_DRIVE_CREDENTIALS missing"}, noop
		}
		logger.Info("Connecting to Google Sheets...")
		repo, err := repository.NewSheetsRepository(ctx, []byte(cfg.Store.CredentialsJSON), cfg.Store.SheetID, cfg.Store.Range, logger)
		if err != nil {
			logger.Error("Sheets store unavailable", zap.Error(err))
			return repository.Unavailable{Reason: err.Error()}, noop
		}
		return repo, noop
	}

	logger.Error("Unknown store type", zap.String("type", cfg.Store.Type))
	return repository.Unavailable{Reason: "unknown store type " + cfg.Store.Type}, noop
}
