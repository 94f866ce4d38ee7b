package delivery

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"findoc_service/internal/infrastructure/httpjson"
	"findoc_service/internal/infrastructure/logger"
	"findoc_service/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

const idempotencyHeader = "Idempotency-Key"

// HTTPDelivery hands rendered documents to the external "send to client" service.
type HTTPDelivery struct {
	client *httpjson.Client
	log    zerolog.Logger
}

var _ interfaces.IDeliveryService = (*HTTPDelivery)(nil)

func NewHTTPDelivery(baseURL string, timeout time.Duration) *HTTPDelivery {
	return &HTTPDelivery{
		client: httpjson.New(baseURL, timeout),
		log:    logger.WithComponent("delivery"),
	}
}

// Deliver posts the request. A 409 means the service already accepted this idempotency key.
func (d *HTTPDelivery) Deliver(ctx context.Context, req interfaces.DeliveryRequest) error {
	headers := map[string]string{idempotencyHeader: req.IdempotencyKey}
	err := d.client.Do(ctx, http.MethodPost, "/deliveries", headers, req, nil)

	var se *httpjson.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusConflict {
		d.log.Info().Str("uuid", req.UUID).Str("idempotency_key", req.IdempotencyKey).Msg("delivery already accepted")
		return nil
	}
	if err != nil {
		d.log.Error().Err(err).Str("uuid", req.UUID).Msg("delivery failed")
		return err
	}
	d.log.Info().Str("uuid", req.UUID).Str("recipient", req.Recipient.Email).Msg("delivery accepted")
	return nil
}

// MockDelivery records deliveries in memory and drops repeated idempotency keys.
type MockDelivery struct {
	mu        sync.Mutex
	delivered map[string]interfaces.DeliveryRequest
	log       zerolog.Logger
}

var _ interfaces.IDeliveryService = (*MockDelivery)(nil)

func NewMockDelivery() *MockDelivery {
	return &MockDelivery{
		delivered: make(map[string]interfaces.DeliveryRequest),
		log:       logger.WithComponent("delivery"),
	}
}

func (d *MockDelivery) Deliver(_ context.Context, req interfaces.DeliveryRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.delivered[req.IdempotencyKey]; ok {
		return nil
	}
	d.delivered[req.IdempotencyKey] = req
	d.log.Info().Str("uuid", req.UUID).Str("idempotency_key", req.IdempotencyKey).Msg("mock delivery")
	return nil
}

// Count returns how many distinct deliveries were accepted.
func (d *MockDelivery) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.delivered)
}

// New picks the mock or the HTTP delivery service.
func New(baseURL string, mock bool, timeout time.Duration) interfaces.IDeliveryService {
	if mock {
		return NewMockDelivery()
	}
	return NewHTTPDelivery(baseURL, timeout)
}
