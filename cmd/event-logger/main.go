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

var (
	configFile string
	inputFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "event-logger",
		Short: "Forwards structured application events to an analytics backend",
		Long:  "Reads JSON-lines event records and forwards them, schema-tagged, through the configured transport",
		RunE:  sendCmd().RunE,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (required)")
	rootCmd.PersistentFlags().StringVar(&inputFile, "input", "-", "Event input file, '-' for stdin")

	rootCmd.AddCommand(sendCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Read events from the input and forward them",
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

			app := NewApp(cfg, log)
			if err := app.Initialize(ctx); err != nil {
				log.Errorw("Failed to initialize application", "error", err)
				return err
			}
			defer app.Shutdown()

			input, closeInput, err := openInput(inputFile)
			if err != nil {
				log.Errorw("Failed to open input", "error", err)
				return err
			}
			defer closeInput()

			return app.Run(ctx, input)
		},
	}
}
