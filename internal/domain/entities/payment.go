package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment processing outcome reported by the provider.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// PaymentSource tells whether a payment came from the gateway or was recorded manually.
type PaymentSource string

const (
	PaymentSourceGateway PaymentSource = "gateway"
	PaymentSourceManual  PaymentSource = "manual"
)

// Payment is one payment intake against an invoice.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI invoice_id-index: invoice_id
//
// Provider payload:
//   - ProviderPayloadRaw keeps the original gateway response (JSON) for traceability.
//   - ProviderPayload is the parsed representation, useful for querying/debugging.
type Payment struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"` // invoice uuid
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Status    PaymentStatus   `json:"status"`
	Source    PaymentSource   `json:"source"`

	ProviderPaymentID  string                 `json:"provider_payment_id,omitempty"`
	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
