package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"promotedlogger/internal/config"
	"promotedlogger/internal/logger"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "collector-sink",
		Short: "Debug collector for event-logger envelopes",
		Long:  "Accepts HTTP transport envelopes, logs them, and exposes intake metrics. Intended for development and integration testing",
		RunE:  serveCmd().RunE,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (required)")

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the collector sink",
		RunE: func(cmd *cobra.Command, args []string) error {
			earlyLog := logger.NewEarlyLog()

			if configFile == "" {
				configFile = os.Getenv("CONFIG_FILE")
				if configFile == "" {
					earlyLog.Error("Config file is required. Use --config flag or CONFIG_FILE environment variable")
					return fmt.Errorf("config file is required")
				}
			}

			cfg, err := config.Load(configFile)
			if err != nil {
				earlyLog.Error("Failed to load config: %v", err)
				return err
			}

			log, err := logger.New(cfg.Logging.Level)
			if err != nil {
				earlyLog.Error("Failed to init logger: %v", err)
				return err
			}
			defer log.Sync()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			log.Infow("Starting collector sink")

			app := NewApp(cfg, log)
			if err := app.Run(ctx); err != nil && err != context.Canceled {
				log.Errorw("Sink stopped with error", "error", err)
				return err
			}
			log.Infow("Sink shutdown complete")
			return nil
		},
	}
}
