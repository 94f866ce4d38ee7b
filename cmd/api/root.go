package main

import (
	"fmt"
	"log"
	"os"

	"findoc_service/internal/config"
	"findoc_service/internal/infrastructure/logger"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "findoc",
	Short: "Financial document service: estimations, invoices and payment intake",
	Long: `findoc serves the estimation and invoice lifecycle over HTTP and ships a few
operational helpers around it.

Configuration is read from the environment; a .env file in the working directory
is loaded automatically.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cmdLog := logger.WithComponent("cmd")
		cmdLog.Error().Err(err).Msg("command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging configures zerolog from the environment. A config that fails validation
// still yields a usable logger so that commands not needing the full config keep working.
func setupLogging(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		return nil
	}
	return logger.Setup(cfg.GetLoggerConfig())
}

func init() {
	rootCmd.AddCommand(serveCmd, createTablesCmd, totalsCmd)
}
