package response

import (
	"time"

	"findoc_service/internal/domain/entities"
)

type LineItemResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

// TotalsResponse renders money as fixed two-place strings so clients never round again.
type TotalsResponse struct {
	Subtotal       string `json:"subtotal"`
	TaxPercentage  string `json:"tax_percentage"`
	TaxAmount      string `json:"tax_amount"`
	DiscountAmount string `json:"discount_amount"`
	TotalAmount    string `json:"total_amount"`
}

type ClientResponse struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// StatusView is the effective status of a document and its badge.
type StatusView struct {
	Status       string `json:"status"`
	StoredStatus string `json:"stored_status"`
	StatusLabel  string `json:"status_label"`
	StatusTone   string `json:"status_tone"`
}

type VoidResponse struct {
	IsVoided   bool       `json:"is_voided"`
	VoidedAt   *time.Time `json:"voided_at,omitempty"`
	VoidedBy   string     `json:"voided_by,omitempty"`
	VoidReason string     `json:"void_reason,omitempty"`
}

func fromLineItems(items []entities.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, LineItemResponse{
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			Rate:        it.Rate.StringFixed(2),
			Amount:      it.Amount.StringFixed(2),
		})
	}
	return out
}

func fromTotals(t entities.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:       t.Subtotal.StringFixed(2),
		TaxPercentage:  t.TaxPercentage.String(),
		TaxAmount:      t.TaxAmount.StringFixed(2),
		DiscountAmount: t.DiscountAmount.StringFixed(2),
		TotalAmount:    t.TotalAmount.StringFixed(2),
	}
}

func fromClient(c entities.ClientSnapshot) ClientResponse {
	return ClientResponse{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

func statusView(effective, stored string, badge entities.Badge) StatusView {
	return StatusView{
		Status:       effective,
		StoredStatus: stored,
		StatusLabel:  badge.Label,
		StatusTone:   string(badge.Tone),
	}
}

func fromVoid(v entities.VoidInfo) VoidResponse {
	return VoidResponse{IsVoided: v.IsVoided(), VoidedAt: v.VoidedAt, VoidedBy: v.VoidedBy, VoidReason: v.VoidReason}
}
