package request

import (
	"errors"
	"strings"
	"time"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/usecase"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
)

// CreateEstimationRequest is the payload of POST /estimations.
type CreateEstimationRequest struct {
	OrderRef              string            `json:"order_ref"`
	Title                 string            `json:"title"`
	Description           string            `json:"description"`
	CostBreakdown         []LineItemRequest `json:"cost_breakdown"`
	TaxPercentage         decimal.Decimal   `json:"tax_percentage"`
	DiscountAmount        decimal.Decimal   `json:"discount_amount"`
	EstimatedTimelineDays int               `json:"estimated_timeline_days"`
	ValidUntil            *time.Time        `json:"valid_until"`
	Client                ClientRequest     `json:"client"`
}

func (r CreateEstimationRequest) ToInput() usecase.CreateEstimationInput {
	return usecase.CreateEstimationInput{
		OrderRef:              strings.TrimSpace(r.OrderRef),
		Title:                 strings.TrimSpace(r.Title),
		Description:           strings.TrimSpace(r.Description),
		Items:                 toLineItemInputs(r.CostBreakdown),
		TaxPercentage:         r.TaxPercentage,
		DiscountAmount:        r.DiscountAmount,
		EstimatedTimelineDays: r.EstimatedTimelineDays,
		ValidUntil:            r.ValidUntil,
		Client:                r.Client.ToSnapshot(),
	}
}

// UpdateEstimationRequest is the payload of PATCH /estimations/:uuid. Absent fields stay unchanged.
type UpdateEstimationRequest struct {
	Title                 *string           `json:"title"`
	Description           *string           `json:"description"`
	CostBreakdown         []LineItemRequest `json:"cost_breakdown"`
	TaxPercentage         *decimal.Decimal  `json:"tax_percentage"`
	DiscountAmount        *decimal.Decimal  `json:"discount_amount"`
	EstimatedTimelineDays *int              `json:"estimated_timeline_days"`
	ValidUntil            *time.Time        `json:"valid_until"`
	Client                *ClientRequest    `json:"client"`
}

func (r UpdateEstimationRequest) ToInput() usecase.UpdateEstimationInput {
	return usecase.UpdateEstimationInput{
		Title:                 r.Title,
		Description:           r.Description,
		Items:                 toLineItemInputs(r.CostBreakdown),
		TaxPercentage:         r.TaxPercentage,
		DiscountAmount:        r.DiscountAmount,
		EstimatedTimelineDays: r.EstimatedTimelineDays,
		ValidUntil:            r.ValidUntil,
		Client:                clientPatch(r.Client),
	}
}

// DecisionRequest records the client decision on a sent estimation.
type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
}

func (r DecisionRequest) ResolveDecision() (entities.EstimationDecision, error) {
	switch entities.EstimationDecision(strings.ToLower(strings.TrimSpace(r.Decision))) {
	case entities.DecisionApproved:
		return entities.DecisionApproved, nil
	case entities.DecisionRejected:
		return entities.DecisionRejected, nil
	}
	return "", ErrInvalidDecision
}

// InvoiceFromEstimationRequest is the payload of POST /estimations/:uuid/invoice.
type InvoiceFromEstimationRequest struct {
	DueDate *time.Time `json:"due_date"`
}
