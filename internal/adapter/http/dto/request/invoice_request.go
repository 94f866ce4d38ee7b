package request

import (
	"strings"
	"time"

	"findoc_service/internal/usecase"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest is the payload of POST /invoices.
type CreateInvoiceRequest struct {
	OrderRef       string            `json:"order_ref"`
	EstimationRef  string            `json:"estimation_ref"`
	LineItems      []LineItemRequest `json:"line_items"`
	TaxPercentage  decimal.Decimal   `json:"tax_percentage"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	DueDate        *time.Time        `json:"due_date"`
	Client         ClientRequest     `json:"client"`
}

func (r CreateInvoiceRequest) ToInput() usecase.CreateInvoiceInput {
	return usecase.CreateInvoiceInput{
		OrderRef:       strings.TrimSpace(r.OrderRef),
		EstimationRef:  strings.TrimSpace(r.EstimationRef),
		Items:          toLineItemInputs(r.LineItems),
		TaxPercentage:  r.TaxPercentage,
		DiscountAmount: r.DiscountAmount,
		DueDate:        r.DueDate,
		Client:         r.Client.ToSnapshot(),
	}
}

// UpdateInvoiceRequest is the payload of PATCH /invoices/:uuid. Absent fields stay unchanged.
type UpdateInvoiceRequest struct {
	LineItems      []LineItemRequest `json:"line_items"`
	TaxPercentage  *decimal.Decimal  `json:"tax_percentage"`
	DiscountAmount *decimal.Decimal  `json:"discount_amount"`
	DueDate        *time.Time        `json:"due_date"`
	Client         *ClientRequest    `json:"client"`
}

func (r UpdateInvoiceRequest) ToInput() usecase.UpdateInvoiceInput {
	return usecase.UpdateInvoiceInput{
		Items:          toLineItemInputs(r.LineItems),
		TaxPercentage:  r.TaxPercentage,
		DiscountAmount: r.DiscountAmount,
		DueDate:        r.DueDate,
		Client:         clientPatch(r.Client),
	}
}
