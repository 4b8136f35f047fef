// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/config"
	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/core"
	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/infra/metricscollector"
	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/infra/telegram"
	"github.com/unsaidthoughts120-ctrl/Confesssion-Wall-System/internal/relay/presentation/rest"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appCfg := cfg.ApplicationConfig

	logger := setupLogger(appCfg.LogLevel)

	if appCfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, err := initializeDependencies(appCfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Cleanup()

	service, err := core.NewService(deps.ServiceConfig)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create submission service", "error", err)
		deps.Cleanup()
		os.Exit(1)
	}

	if !appCfg.TelegramConfigured() {
		logger.WarnContext(ctx, "TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is not set, submissions will be rejected")
	}

	httpServer, err := rest.NewServer(rest.ServerConfig{
		SubmissionService: service,
		Logger:            logger,
		Addr:              cfg.ServerConfig.Address(),
		Version:           appCfg.Version,
		CORSAllowedOrigin: appCfg.CORSAllowedOrigin,
		ReadTimeout:       cfg.ServerConfig.ReadTimeout(),
		WriteTimeout:      cfg.ServerConfig.WriteTimeout(),
		ShutdownTimeout:   cfg.ServerConfig.ShutdownTimeout(),
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create HTTP server", "error", err)
		deps.Cleanup()
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Starting confession relay",
		"version", appCfg.Version,
		"environment", appCfg.Environment,
		"port", cfg.ServerConfig.Port,
	)

	// Start server (this blocks until shutdown)
	if err := httpServer.Start(ctx); err != nil {
		logger.ErrorContext(ctx, "Server error", "error", err)
		deps.Cleanup()
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Application shutdown completed")
}

// Dependencies holds all initialized dependencies
type Dependencies struct {
	ServiceConfig core.ServiceConfig
	closers       []func() error
}

// Cleanup releases resources that need explicit closing
func (d *Dependencies) Cleanup() {
	for _, closeFn := range d.closers {
		if err := closeFn(); err != nil {
			slog.Warn("Failed to release dependency", "error", err)
		}
	}
	d.closers = nil
}

// setupLogger creates and configures the logger
func setupLogger(logLevel string) *slog.Logger {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Use JSON handler
	logger := slog.New(slog.NewJSONHandler(os.Stdout, opts))
	slog.SetDefault(logger)

	return logger
}

// initializeDependencies initializes all external dependencies
func initializeDependencies(cfg config.ApplicationConfig, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	var collector core.MetricsCollector = metricscollector.NewNoopCollector()
	if cfg.MetricsDBPath != "" {
		sqliteCollector, err := metricscollector.NewMetricsCollector(cfg.MetricsDBPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize metrics collector: %w", err)
		}
		collector = sqliteCollector
		deps.closers = append(deps.closers, sqliteCollector.Close)
	}

	// The client is only built when a token exists; the service reports
	// itself unconfigured otherwise.
	var sender core.TelegramSender
	if cfg.TelegramBotToken != "" {
		client, err := telegram.NewClient(telegram.ClientConfig{
			BaseURL:  cfg.TelegramBaseURL,
			BotToken: cfg.TelegramBotToken,
		})
		if err != nil {
			deps.Cleanup()
			return nil, fmt.Errorf("failed to initialize Telegram client: %w", err)
		}
		sender = client
	}

	deps.ServiceConfig = core.ServiceConfig{
		Telegram:         sender,
		ChatID:           cfg.TelegramChatID,
		MetricsCollector: collector,
		Logger:           logger,
		Location:         location,
	}

	return deps, nil
}
