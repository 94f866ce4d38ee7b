package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a post-sale bill persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI uuid-index: uuid
//   - GSI order_ref-index: order_ref
//   - GSI estimation_ref-index: estimation_ref
//
// Monetary representation:
//   - Totals are computed by the totals calculator and frozen after draft.
//   - BalanceDue is always round2(TotalAmount - AmountPaid).
type Invoice struct {
	ID            string `json:"id"`
	UUID          string `json:"uuid"`
	InvoiceNumber string `json:"invoice_number"`
	OrderRef      string `json:"order_ref"`
	EstimationRef string `json:"estimation_ref,omitempty"`

	LineItems []LineItem `json:"line_items"`
	Totals

	AmountPaid decimal.Decimal `json:"amount_paid"`
	BalanceDue decimal.Decimal `json:"balance_due"`
	DueDate    *time.Time      `json:"due_date,omitempty"`

	Status      InvoiceStatus `json:"status"`
	PDFURL      string        `json:"pdf_url,omitempty"`
	PDFPublicID string        `json:"pdf_public_id,omitempty"`

	SenderName  string         `json:"sender_name,omitempty"`
	SenderEmail string         `json:"sender_email,omitempty"`
	Client      ClientSnapshot `json:"client"`

	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	VoidInfo
	Version int64 `json:"version"`
}

// IsOverdue reports whether the due date passed while the invoice is still collectable.
// It is a computed view and is never persisted as the status.
func (inv Invoice) IsOverdue(now time.Time) bool {
	if inv.DueDate == nil || inv.Status == InvoiceStatusPaid || inv.Status == InvoiceStatusCancelled {
		return false
	}
	return inv.DueDate.Before(now)
}

// EffectiveStatus returns the stored status, or overdue when the derived flag applies.
func (inv Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if inv.IsOverdue(now) {
		return InvoiceStatusOverdue
	}
	return inv.Status
}

// CheckDraft fails unless the invoice may still be edited.
func (inv Invoice) CheckDraft(op string) error {
	if inv.IsVoided() {
		return &IllegalStateError{Op: op, Status: "voided"}
	}
	if inv.Status != InvoiceStatusDraft {
		return &IllegalStateError{Op: op, Status: string(inv.Status)}
	}
	return nil
}

// ApplyTotals replaces line items and totals with calculator output.
func (inv *Invoice) ApplyTotals(items []LineItem, t Totals, balanceDue decimal.Decimal) {
	inv.LineItems = items
	inv.Totals = t
	inv.BalanceDue = balanceDue
}

// AttachPDF stores the rendered document location. Draft only.
func (inv *Invoice) AttachPDF(url, publicID string, now time.Time) error {
	if err := inv.CheckDraft("generate pdf"); err != nil {
		return err
	}
	inv.PDFURL = url
	inv.PDFPublicID = publicID
	inv.UpdatedAt = now
	return nil
}

// ClearPDF drops a rendered PDF that no longer matches the draft contents.
func (inv *Invoice) ClearPDF() {
	inv.PDFURL = ""
	inv.PDFPublicID = ""
}

func (inv Invoice) checkTransition(op string, target InvoiceStatus) error {
	if inv.IsVoided() {
		return &IllegalStateError{Op: op, Status: "voided"}
	}
	if !inv.Status.CanTransitionTo(target) {
		return &InvalidTransitionError{From: string(inv.Status), To: string(target)}
	}
	return nil
}

// CheckSend validates draft -> sent without mutating the invoice.
func (inv Invoice) CheckSend() error {
	if err := inv.checkTransition("send", InvoiceStatusSent); err != nil {
		return err
	}
	if strings.TrimSpace(inv.PDFURL) == "" {
		return &PreconditionError{Op: "send", Reason: "pdf has not been generated"}
	}
	return nil
}

// MarkSent applies draft -> sent.
func (inv *Invoice) MarkSent(now time.Time) error {
	if err := inv.CheckSend(); err != nil {
		return err
	}
	inv.Status = InvoiceStatusSent
	inv.SentAt = &now
	inv.UpdatedAt = now
	return nil
}

// MarkPending applies sent -> pending.
func (inv *Invoice) MarkPending(now time.Time) error {
	if err := inv.checkTransition("mark pending", InvoiceStatusPending); err != nil {
		return err
	}
	inv.Status = InvoiceStatusPending
	inv.UpdatedAt = now
	return nil
}

// CheckPayment fails unless a payment may be recorded in the current status.
func (inv Invoice) CheckPayment() error {
	if inv.IsVoided() {
		return &IllegalStateError{Op: "record payment", Status: "voided"}
	}
	if !inv.Status.AcceptsPayments() {
		return &IllegalStateError{Op: "record payment", Status: string(inv.Status)}
	}
	return nil
}

// ApplyPayment stores a new cumulative paid amount and moves to partial or paid.
// balanceDue must come from the totals calculator.
func (inv *Invoice) ApplyPayment(amountPaid, balanceDue decimal.Decimal, now time.Time) error {
	target := InvoiceStatusPartial
	if balanceDue.IsZero() {
		target = InvoiceStatusPaid
	}
	if err := inv.CheckPayment(); err != nil {
		return err
	}
	if err := inv.checkTransition("record payment", target); err != nil {
		return err
	}
	inv.AmountPaid = amountPaid
	inv.BalanceDue = balanceDue
	inv.Status = target
	if target == InvoiceStatusPaid {
		inv.PaidAt = &now
	}
	inv.UpdatedAt = now
	return nil
}

// Cancel applies the operator cancellation from any non-terminal status.
func (inv *Invoice) Cancel(now time.Time) error {
	if err := inv.checkTransition("cancel", InvoiceStatusCancelled); err != nil {
		return err
	}
	inv.Status = InvoiceStatusCancelled
	inv.CancelledAt = &now
	inv.UpdatedAt = now
	return nil
}

// Void stamps an elevated void on a non-draft invoice.
func (inv *Invoice) Void(actorID, reason string, now time.Time) error {
	if inv.IsVoided() {
		return &IllegalStateError{Op: "void", Status: "voided"}
	}
	if inv.Status == InvoiceStatusDraft {
		return &IllegalStateError{Op: "void", Status: string(inv.Status)}
	}
	inv.VoidedAt = &now
	inv.VoidedBy = actorID
	inv.VoidReason = reason
	inv.UpdatedAt = now
	return nil
}

// Recipient returns the delivery address for the invoice client.
func (inv Invoice) Recipient() Recipient {
	return Recipient{Name: inv.Client.Name, Email: inv.Client.Email, Phone: inv.Client.Phone}
}

// Recipient returns the delivery address for the estimation client.
func (e Estimation) Recipient() Recipient {
	return Recipient{Name: e.Client.Name, Email: e.Client.Email, Phone: e.Client.Phone}
}

// Recipient is who a document is delivered to.
type Recipient struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
