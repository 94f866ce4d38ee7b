package request

import (
	"strings"

	"findoc_service/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// LineItemRequest is one billable row as the client submits it. Amount is never accepted;
// it is derived by the totals calculator.
type LineItemRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal  `json:"rate"`
}

type ClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (c ClientRequest) ToSnapshot() entities.ClientSnapshot {
	return entities.ClientSnapshot{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}

func toLineItemInputs(items []LineItemRequest) []entities.LineItemInput {
	if items == nil {
		return nil
	}
	out := make([]entities.LineItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, entities.LineItemInput{
			Name:        strings.TrimSpace(it.Name),
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			Rate:        it.Rate,
		})
	}
	return out
}

func clientPatch(c *ClientRequest) *entities.ClientSnapshot {
	if c == nil {
		return nil
	}
	s := c.ToSnapshot()
	return &s
}

// VoidRequest carries the mandatory reason of an elevated void.
type VoidRequest struct {
	Reason string `json:"reason"`
}

func (r VoidRequest) ResolveReason() string {
	return strings.TrimSpace(r.Reason)
}
