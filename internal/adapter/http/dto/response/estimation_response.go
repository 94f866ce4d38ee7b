package response

import (
	"time"

	"findoc_service/internal/domain/entities"
)

type EstimationResponse struct {
	EstimationID          string             `json:"estimation_id"`
	UUID                  string             `json:"uuid"`
	OrderRef              string             `json:"order_ref"`
	Title                 string             `json:"title"`
	Description           string             `json:"description,omitempty"`
	CostBreakdown         []LineItemResponse `json:"cost_breakdown"`
	TotalsResponse
	EstimatedTimelineDays int        `json:"estimated_timeline_days"`
	ValidUntil            *time.Time `json:"valid_until,omitempty"`
	StatusView
	IsExpired   bool           `json:"is_expired"`
	PDFURL      string         `json:"pdf_url,omitempty"`
	PDFPublicID string         `json:"pdf_public_id,omitempty"`
	Client      ClientResponse `json:"client"`
	CreatedBy   string         `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	SentAt      *time.Time     `json:"sent_at,omitempty"`
	ApprovedAt  *time.Time     `json:"approved_at,omitempty"`
	RejectedAt  *time.Time     `json:"rejected_at,omitempty"`
	VoidResponse
	Version int64 `json:"version"`
}

// FromEstimation renders e as seen at now: a sent estimation past valid_until reads as expired.
func FromEstimation(e entities.Estimation, now time.Time) EstimationResponse {
	effective := e.EffectiveStatus(now)
	return EstimationResponse{
		EstimationID:          e.UUID,
		UUID:                  e.UUID,
		OrderRef:              e.OrderRef,
		Title:                 e.Title,
		Description:           e.Description,
		CostBreakdown:         fromLineItems(e.CostBreakdown),
		TotalsResponse:        fromTotals(e.Totals),
		EstimatedTimelineDays: e.EstimatedTimelineDays,
		ValidUntil:            e.ValidUntil,
		StatusView:            statusView(string(effective), string(e.Status), effective.Badge()),
		IsExpired:             e.IsExpired(now),
		PDFURL:                e.PDFURL,
		PDFPublicID:           e.PDFPublicID,
		Client:                fromClient(e.Client),
		CreatedBy:             e.CreatedBy,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
		SentAt:                e.SentAt,
		ApprovedAt:            e.ApprovedAt,
		RejectedAt:            e.RejectedAt,
		VoidResponse:          fromVoid(e.VoidInfo),
		Version:               e.Version,
	}
}

func FromEstimations(list []entities.Estimation, now time.Time) []EstimationResponse {
	out := make([]EstimationResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromEstimation(e, now))
	}
	return out
}
