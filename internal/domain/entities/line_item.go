package entities

import "github.com/shopspring/decimal"

// LineItemInput is what a caller may supply for one billable row.
// Amount is intentionally absent: it is always derived.
type LineItemInput struct {
	Name        string
	Description string
	// Quantity defaults to 1 when nil.
	Quantity *decimal.Decimal
	Rate     decimal.Decimal
}

// LineItem is one billable row of an estimation cost breakdown or invoice.
//
// Invariant: Amount == round2(Quantity * Rate). Only the totals calculator builds LineItems.
type LineItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Input converts a stored item back to an input, used when re-running the calculator
// over an existing document (copying an estimation into an invoice, partial draft edits).
func (li LineItem) Input() LineItemInput {
	q := li.Quantity
	return LineItemInput{
		Name:        li.Name,
		Description: li.Description,
		Quantity:    &q,
		Rate:        li.Rate,
	}
}

// LineItemInputs converts a list of stored items back to inputs.
func LineItemInputs(items []LineItem) []LineItemInput {
	out := make([]LineItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, it.Input())
	}
	return out
}

// Totals are the derived document amounts.
//
// DiscountAmount is the effective discount, clamped so TotalAmount never goes below zero.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxPercentage  decimal.Decimal `json:"tax_percentage"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}
