package response

import (
	"time"

	"findoc_service/internal/domain/entities"
)

type InvoiceResponse struct {
	InvoiceID     string             `json:"invoice_id"`
	UUID          string             `json:"uuid"`
	InvoiceNumber string             `json:"invoice_number"`
	OrderRef      string             `json:"order_ref"`
	EstimationRef string             `json:"estimation_ref,omitempty"`
	LineItems     []LineItemResponse `json:"line_items"`
	TotalsResponse
	AmountPaid string     `json:"amount_paid"`
	BalanceDue string     `json:"balance_due"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	StatusView
	IsOverdue   bool           `json:"is_overdue"`
	PDFURL      string         `json:"pdf_url,omitempty"`
	PDFPublicID string         `json:"pdf_public_id,omitempty"`
	SenderName  string         `json:"sender_name,omitempty"`
	SenderEmail string         `json:"sender_email,omitempty"`
	Client      ClientResponse `json:"client"`
	CreatedBy   string         `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	SentAt      *time.Time     `json:"sent_at,omitempty"`
	PaidAt      *time.Time     `json:"paid_at,omitempty"`
	CancelledAt *time.Time     `json:"cancelled_at,omitempty"`
	VoidResponse
	Version int64 `json:"version"`
}

// FromInvoice renders inv as seen at now; overdue is derived here and never stored.
func FromInvoice(inv entities.Invoice, now time.Time) InvoiceResponse {
	effective := inv.EffectiveStatus(now)
	return InvoiceResponse{
		InvoiceID:      inv.UUID,
		UUID:           inv.UUID,
		InvoiceNumber:  inv.InvoiceNumber,
		OrderRef:       inv.OrderRef,
		EstimationRef:  inv.EstimationRef,
		LineItems:      fromLineItems(inv.LineItems),
		TotalsResponse: fromTotals(inv.Totals),
		AmountPaid:     inv.AmountPaid.StringFixed(2),
		BalanceDue:     inv.BalanceDue.StringFixed(2),
		DueDate:        inv.DueDate,
		StatusView:     statusView(string(effective), string(inv.Status), effective.Badge()),
		IsOverdue:      inv.IsOverdue(now),
		PDFURL:         inv.PDFURL,
		PDFPublicID:    inv.PDFPublicID,
		SenderName:     inv.SenderName,
		SenderEmail:    inv.SenderEmail,
		Client:         fromClient(inv.Client),
		CreatedBy:      inv.CreatedBy,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
		SentAt:         inv.SentAt,
		PaidAt:         inv.PaidAt,
		CancelledAt:    inv.CancelledAt,
		VoidResponse:   fromVoid(inv.VoidInfo),
		Version:        inv.Version,
	}
}

func FromInvoices(list []entities.Invoice, now time.Time) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, FromInvoice(inv, now))
	}
	return out
}
