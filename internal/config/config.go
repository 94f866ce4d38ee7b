package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"findoc_service/internal/infrastructure/logger"
)

type Config struct {
	// HTTP
	Port int

	// DynamoDB
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	EstimationsTable   string
	InvoicesTable      string
	PaymentsTable      string
	CountersTable      string

	// Collaborators
	PDFRendererURL      string
	PDFRendererMock     bool
	DeliveryServiceURL  string
	DeliveryMock        bool
	OrderDirectoryURL   string
	CollaboratorTimeout time.Duration

	// Mercado Pago
	MercadoPagoAccessToken    string
	PaymentGatewayMock        bool
	MercadoPagoTestPayerEmail string
	MercadoPagoTestPayerID    string

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	timeout, err := time.ParseDuration(getEnv("COLLABORATOR_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid COLLABORATOR_TIMEOUT: %w", err)
	}

	config := &Config{
		Port:                      port,
		AWSRegion:                 getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:            getEnv("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretAccessKey:        getEnv("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoDBEndpoint:          getEnv("DYNAMODB_ENDPOINT", ""),
		EstimationsTable:          getEnv("ESTIMATIONS_TABLE", "estimations"),
		InvoicesTable:             getEnv("INVOICES_TABLE", "invoices"),
		PaymentsTable:             getEnv("PAYMENTS_TABLE", "payments"),
		CountersTable:             getEnv("COUNTERS_TABLE", "counters"),
		PDFRendererURL:            getEnv("PDF_RENDERER_URL", ""),
		PDFRendererMock:           getFlag("PDF_RENDERER_MOCK"),
		DeliveryServiceURL:        getEnv("DELIVERY_SERVICE_URL", ""),
		DeliveryMock:              getFlag("DELIVERY_MOCK"),
		OrderDirectoryURL:         getEnv("ORDER_DIRECTORY_URL", ""),
		CollaboratorTimeout:       timeout,
		MercadoPagoAccessToken:    getEnv("MERCADOPAGO_ACCESS_TOKEN", ""),
		PaymentGatewayMock:        getFlag("PAYMENT_GATEWAY_MOCK") || getFlag("MERCADOPAGO_MOCK"),
		MercadoPagoTestPayerEmail: getEnv("MERCADOPAGO_TEST_PAYER_EMAIL", ""),
		MercadoPagoTestPayerID:    getEnv("MERCADOPAGO_TEST_PAYER_USER_ID", ""),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		LogFormat:                 getEnv("LOG_FORMAT", "json"),
		LogTimeFormat:             getEnv("LOG_TIME_FORMAT", time.RFC3339),
		LogOutput:                 getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.CollaboratorTimeout <= 0 {
		return fmt.Errorf("COLLABORATOR_TIMEOUT must be positive")
	}
	if c.PDFRendererURL == "" && !c.PDFRendererMock {
		return fmt.Errorf("PDF_RENDERER_URL is required unless PDF_RENDERER_MOCK is set")
	}
	if c.DeliveryServiceURL == "" && !c.DeliveryMock {
		return fmt.Errorf("DELIVERY_SERVICE_URL is required unless DELIVERY_MOCK is set")
	}
	return nil
}

// SandboxToken reports whether the Mercado Pago token targets the test environment.
func (c *Config) SandboxToken() bool {
	return strings.HasPrefix(strings.TrimSpace(c.MercadoPagoAccessToken), "TEST-")
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFlag(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
