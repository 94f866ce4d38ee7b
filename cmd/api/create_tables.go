package main

import (
	"findoc_service/internal/config"
	"findoc_service/internal/infrastructure/database"
	"findoc_service/internal/infrastructure/logger"

	"github.com/spf13/cobra"
)

var createTablesCmd = &cobra.Command{
	Use:   "create-tables",
	Short: "Create the DynamoDB tables and indexes the service needs",
	Long: `Create the estimations, invoices, payments and counters tables with their
global secondary indexes. Tables that already exist are left untouched, so the
command is safe to re-run against a local DynamoDB.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ddb, err := database.ConnectDynamoDB(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := database.EnsureTables(cmd.Context(), ddb, database.Tables(cfg)); err != nil {
			return err
		}
		log := logger.WithComponent("main")
		log.Info().Msg("tables ready")
		return nil
	},
}
