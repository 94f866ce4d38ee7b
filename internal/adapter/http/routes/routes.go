package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	_ "findoc_service/docs"
	"findoc_service/internal/adapter/http/handlers"
	"findoc_service/internal/adapter/persistence/repository"
	"findoc_service/internal/config"
	"findoc_service/internal/infrastructure/database"
	"findoc_service/internal/infrastructure/delivery"
	"findoc_service/internal/infrastructure/directory"
	"findoc_service/internal/infrastructure/logger"
	"findoc_service/internal/infrastructure/payments"
	"findoc_service/internal/infrastructure/pdf"
	"findoc_service/internal/usecase"
	"findoc_service/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Dependencies are the use cases the HTTP surface is built on.
type Dependencies struct {
	Estimations     usecase.IEstimationUseCase
	Invoices        usecase.IInvoiceUseCase
	Payments        usecase.IInvoicePaymentUseCase
	PaymentMockMode bool
}

// NewRouter wires middlewares, swagger and the /v1 routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	estimationHandler := handlers.NewEstimationHandler(deps.Estimations, deps.Invoices)
	invoiceHandler := handlers.NewInvoiceHandler(deps.Invoices)
	paymentHandler := handlers.NewInvoicePaymentHandler(deps.Payments, deps.PaymentMockMode)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimationRoutes(v1, estimationHandler)
	addInvoiceRoutes(v1, invoiceHandler, paymentHandler)

	return router
}

// Run builds the service from cfg and serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	deps, err := BuildDependencies(ctx, cfg)
	if err != nil {
		return err
	}

	log := logger.WithComponent("server")
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to startup the application: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// BuildDependencies connects DynamoDB and the collaborators and assembles the use cases.
func BuildDependencies(ctx context.Context, cfg *config.Config) (Dependencies, error) {
	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return Dependencies{}, err
	}

	estimationRepo := repository.NewEstimationDynamoRepository(ddb)
	invoiceRepo := repository.NewInvoiceDynamoRepository(ddb)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb)
	counters := repository.NewCounterDynamoRepository(ddb)

	renderer := pdf.New(cfg.PDFRendererURL, cfg.PDFRendererMock, cfg.CollaboratorTimeout)
	deliverySvc := delivery.New(cfg.DeliveryServiceURL, cfg.DeliveryMock, cfg.CollaboratorTimeout)
	orders := directory.New(cfg.OrderDirectoryURL, cfg.CollaboratorTimeout)

	log := logger.WithComponent("server")
	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock)
	if err != nil {
		log.Warn().Err(err).Msg("Mercado Pago gateway not configured")
	} else {
		paymentGateway = mpGateway
	}

	opts := usecase.Options{CollaboratorTimeout: cfg.CollaboratorTimeout}
	estimations := usecase.NewEstimationUseCase(estimationRepo, renderer, deliverySvc, orders, opts)
	invoices := usecase.NewInvoiceUseCase(invoiceRepo, estimationRepo, counters, renderer, deliverySvc, orders, opts)
	paymentUseCase := usecase.NewInvoicePaymentUseCase(paymentRepo, invoices, paymentGateway, usecase.PaymentOptions{
		MockMode:        cfg.PaymentGatewayMock,
		SandboxToken:    cfg.SandboxToken(),
		TestPayerEmail:  cfg.MercadoPagoTestPayerEmail,
		TestPayerUserID: cfg.MercadoPagoTestPayerID,
	})

	return Dependencies{
		Estimations:     estimations,
		Invoices:        invoices,
		Payments:        paymentUseCase,
		PaymentMockMode: cfg.PaymentGatewayMock,
	}, nil
}

func setMiddlewares(router *gin.Engine) {
	router.Use(requestLogger())
	router.Use(recoverer())
}
