package interfaces

import (
	"context"
	"time"

	"findoc_service/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// DocumentKind tells collaborators which document type they handle.
type DocumentKind string

const (
	KindEstimation DocumentKind = "estimation"
	KindInvoice    DocumentKind = "invoice"
)

// RenderRequest is the frozen view of a document handed to the PDF renderer.
type RenderRequest struct {
	Kind        DocumentKind            `json:"kind"`
	UUID        string                  `json:"uuid"`
	Number      string                  `json:"number,omitempty"`
	Title       string                  `json:"title,omitempty"`
	Items       []entities.LineItem     `json:"items"`
	Totals      entities.Totals         `json:"totals"`
	AmountPaid  *decimal.Decimal        `json:"amount_paid,omitempty"`
	BalanceDue  *decimal.Decimal        `json:"balance_due,omitempty"`
	Client      entities.ClientSnapshot `json:"client"`
	SenderName  string                  `json:"sender_name,omitempty"`
	SenderEmail string                  `json:"sender_email,omitempty"`
	IssuedAt    time.Time               `json:"issued_at"`
	DueDate     *time.Time              `json:"due_date,omitempty"`
	ValidUntil  *time.Time              `json:"valid_until,omitempty"`
}

// RenderResult is where the rendered PDF lives.
type RenderResult struct {
	PDFURL      string `json:"pdf_url"`
	PDFPublicID string `json:"pdf_public_id"`
}

// IPDFRenderer abstracts the external PDF rendering service.
type IPDFRenderer interface {
	Render(ctx context.Context, req RenderRequest) (RenderResult, error)
}

// DeliveryRequest asks the delivery service to send a rendered document to the client.
//
// IdempotencyKey is stable for one send attempt of one document version, so the
// collaborator can drop duplicates.
type DeliveryRequest struct {
	Kind           DocumentKind       `json:"kind"`
	UUID           string             `json:"uuid"`
	Number         string             `json:"number,omitempty"`
	PDFURL         string             `json:"pdf_url"`
	Recipient      entities.Recipient `json:"recipient"`
	IdempotencyKey string             `json:"idempotency_key"`
}

// IDeliveryService abstracts the external "send to client" service.
type IDeliveryService interface {
	Deliver(ctx context.Context, req DeliveryRequest) error
}

// IOrderDirectory is the read-only source of client details for an order.
// It is consulted at document creation only.
type IOrderDirectory interface {
	GetClientSnapshot(ctx context.Context, orderRef string) (entities.ClientSnapshot, error)
}
