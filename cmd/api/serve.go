package main

import (
	"os"
	"os/signal"
	"syscall"

	"findoc_service/internal/adapter/http/routes"
	"findoc_service/internal/config"
	"findoc_service/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Example: `  # Local development with every collaborator mocked
  PDF_RENDERER_MOCK=true DELIVERY_MOCK=true PAYMENT_GATEWAY_MOCK=true \
    DYNAMODB_ENDPOINT=http://localhost:8000 findoc serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if release, _ := cmd.Flags().GetBool("release"); release {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.WithComponent("main")
	log.Info().Str("version", version).Msg("starting findoc service")
	return routes.Run(ctx, cfg)
}

func init() {
	serveCmd.Flags().Bool("release", false, "Run gin in release mode")
}
