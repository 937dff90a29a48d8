package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/acolombo/taskdeck/internal/logger"
	"github.com/acolombo/taskdeck/pkg/api"
	"github.com/acolombo/taskdeck/pkg/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the TaskDeck server",
	Long: `Start the TaskDeck HTTP server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/taskdeck/config.yaml.

A JWT signing secret is required outside development. Set it via the
TASKDECK_SECRET environment variable or the api.jwt.secret config key.

Examples:
  # Start with default config location
  taskdeck serve

  # Start with custom config
  taskdeck serve --config /etc/taskdeck/config.yaml

  # Environment variable overrides
  TASKDECK_LOGGING_LEVEL=DEBUG taskdeck serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Configuration loaded",
		"environment", cfg.Environment,
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	s, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Error("store close error", "error", err)
		}
	}()
	logger.Info("Store initialized", "type", string(cfg.Database.Type))

	server, err := api.NewServer(cfg.API, cfg.IsDevelopment(), s)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- server.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
	}

	return nil
}
