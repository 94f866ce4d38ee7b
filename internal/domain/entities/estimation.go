package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EstimationDecision is the client decision recorded on a sent estimation.
type EstimationDecision string

const (
	DecisionApproved EstimationDecision = "approved"
	DecisionRejected EstimationDecision = "rejected"
)

// Estimation is a pre-sale quote persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI uuid-index: uuid
//   - GSI order_ref-index: order_ref
//
// Line items, tax and discount are frozen once the estimation leaves draft.
type Estimation struct {
	ID          string `json:"id"`
	UUID        string `json:"uuid"`
	OrderRef    string `json:"order_ref"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	CostBreakdown []LineItem `json:"cost_breakdown"`
	Totals

	EstimatedTimelineDays int        `json:"estimated_timeline_days"`
	ValidUntil            *time.Time `json:"valid_until,omitempty"`

	Status      EstimationStatus `json:"status"`
	PDFURL      string           `json:"pdf_url,omitempty"`
	PDFPublicID string           `json:"pdf_public_id,omitempty"`

	Client ClientSnapshot `json:"client"`

	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`

	VoidInfo
	Version int64 `json:"version"`
}

// IsExpired reports whether a sent estimation passed valid_until without a client decision.
// It is evaluated on read and never requires a write.
func (e Estimation) IsExpired(now time.Time) bool {
	return e.Status == EstimationStatusSent && e.ValidUntil != nil && now.After(*e.ValidUntil)
}

// EffectiveStatus returns the stored status, or expired when the lazy expiry applies.
func (e Estimation) EffectiveStatus(now time.Time) EstimationStatus {
	if e.IsExpired(now) {
		return EstimationStatusExpired
	}
	return e.Status
}

// CheckDraft fails unless the estimation may still be edited.
func (e Estimation) CheckDraft(op string) error {
	if e.IsVoided() {
		return &IllegalStateError{Op: op, Status: "voided"}
	}
	if e.Status != EstimationStatusDraft {
		return &IllegalStateError{Op: op, Status: string(e.Status)}
	}
	return nil
}

// ApplyTotals replaces line items and totals with calculator output.
func (e *Estimation) ApplyTotals(items []LineItem, t Totals) {
	e.CostBreakdown = items
	e.Totals = t
}

// AttachPDF stores the rendered document location. Draft only.
func (e *Estimation) AttachPDF(url, publicID string, now time.Time) error {
	if err := e.CheckDraft("generate pdf"); err != nil {
		return err
	}
	e.PDFURL = url
	e.PDFPublicID = publicID
	e.UpdatedAt = now
	return nil
}

// ClearPDF drops a rendered PDF that no longer matches the draft contents.
func (e *Estimation) ClearPDF() {
	e.PDFURL = ""
	e.PDFPublicID = ""
}

// CheckSend validates draft -> sent without mutating the estimation.
func (e Estimation) CheckSend() error {
	if e.IsVoided() {
		return &IllegalStateError{Op: "send", Status: "voided"}
	}
	if !e.Status.CanTransitionTo(EstimationStatusSent) {
		return &InvalidTransitionError{From: string(e.Status), To: string(EstimationStatusSent)}
	}
	if strings.TrimSpace(e.PDFURL) == "" {
		return &PreconditionError{Op: "send", Reason: "pdf has not been generated"}
	}
	return nil
}

// MarkSent applies draft -> sent.
func (e *Estimation) MarkSent(now time.Time) error {
	if err := e.CheckSend(); err != nil {
		return err
	}
	e.Status = EstimationStatusSent
	e.SentAt = &now
	e.UpdatedAt = now
	return nil
}

// Decide records the client decision on a sent estimation.
func (e *Estimation) Decide(decision EstimationDecision, now time.Time) error {
	if e.IsVoided() {
		return &IllegalStateError{Op: "record decision", Status: "voided"}
	}
	target := EstimationStatus(decision)
	if target != EstimationStatusApproved && target != EstimationStatusRejected {
		v := &ValidationError{}
		v.Add("decision", "must be approved or rejected")
		return v
	}
	from := e.EffectiveStatus(now)
	if !from.CanTransitionTo(target) {
		return &InvalidTransitionError{From: string(from), To: string(target)}
	}
	e.Status = target
	switch target {
	case EstimationStatusApproved:
		e.ApprovedAt = &now
	case EstimationStatusRejected:
		e.RejectedAt = &now
	}
	e.UpdatedAt = now
	return nil
}

// IsApproved reports whether the estimation may originate an invoice.
func (e Estimation) IsApproved() bool {
	return e.Status == EstimationStatusApproved && !e.IsVoided()
}

// Void stamps an elevated void on a non-draft estimation.
func (e *Estimation) Void(actorID, reason string, now time.Time) error {
	if e.IsVoided() {
		return &IllegalStateError{Op: "void", Status: "voided"}
	}
	if e.Status == EstimationStatusDraft {
		return &IllegalStateError{Op: "void", Status: string(e.Status)}
	}
	e.VoidedAt = &now
	e.VoidedBy = actorID
	e.VoidReason = reason
	e.UpdatedAt = now
	return nil
}

// Total is a shorthand used when reconciling invoices against the estimation.
func (e Estimation) Total() decimal.Decimal {
	return e.TotalAmount
}
