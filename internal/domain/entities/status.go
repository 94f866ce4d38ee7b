package entities

// Tone is the display colour family of a status badge.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneUnknown Tone = "unknown"
)

// Badge is the display metadata for a document status.
type Badge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

// EstimationStatus represents the lifecycle of an estimation (quote).
//
//	draft -> sent -> approved | rejected
//	sent  -> expired (derived lazily from valid_until)
type EstimationStatus string

const (
	EstimationStatusDraft    EstimationStatus = "draft"
	EstimationStatusSent     EstimationStatus = "sent"
	EstimationStatusApproved EstimationStatus = "approved"
	EstimationStatusRejected EstimationStatus = "rejected"
	EstimationStatusExpired  EstimationStatus = "expired"
)

// AllEstimationStatuses lists every estimation status.
var AllEstimationStatuses = []EstimationStatus{
	EstimationStatusDraft,
	EstimationStatusSent,
	EstimationStatusApproved,
	EstimationStatusRejected,
	EstimationStatusExpired,
}

var estimationTransitions = map[EstimationStatus][]EstimationStatus{
	EstimationStatusDraft: {EstimationStatusSent},
	EstimationStatusSent:  {EstimationStatusApproved, EstimationStatusRejected, EstimationStatusExpired},
}

// Valid reports whether s is a known status.
func (s EstimationStatus) Valid() bool {
	for _, v := range AllEstimationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition may leave s.
func (s EstimationStatus) IsTerminal() bool {
	return s == EstimationStatusApproved || s == EstimationStatusRejected || s == EstimationStatusExpired
}

// CanTransitionTo reports whether the state machine lists s -> target.
func (s EstimationStatus) CanTransitionTo(target EstimationStatus) bool {
	for _, t := range estimationTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Badge maps the status to display metadata.
func (s EstimationStatus) Badge() Badge {
	switch s {
	case EstimationStatusDraft:
		return Badge{Label: "Draft", Tone: ToneNeutral}
	case EstimationStatusSent:
		return Badge{Label: "Sent", Tone: ToneInfo}
	case EstimationStatusApproved:
		return Badge{Label: "Approved", Tone: ToneSuccess}
	case EstimationStatusRejected:
		return Badge{Label: "Rejected", Tone: ToneDanger}
	case EstimationStatusExpired:
		return Badge{Label: "Expired", Tone: ToneWarning}
	}
	return Badge{Label: string(s), Tone: ToneUnknown}
}

// InvoiceStatus represents the lifecycle of an invoice.
//
//	draft -> sent -> pending | partial | paid | cancelled
//	pending | partial -> partial | paid | cancelled
//	draft -> cancelled
//
// Overdue is never stored; it only appears as the effective status on reads.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// AllInvoiceStatuses lists every invoice status, including the derived overdue view.
var AllInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusPending,
	InvoiceStatusPartial,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusCancelled,
}

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:   {InvoiceStatusSent, InvoiceStatusCancelled},
	InvoiceStatusSent:    {InvoiceStatusPending, InvoiceStatusPartial, InvoiceStatusPaid, InvoiceStatusCancelled},
	InvoiceStatusPending: {InvoiceStatusPartial, InvoiceStatusPaid, InvoiceStatusCancelled},
	InvoiceStatusPartial: {InvoiceStatusPartial, InvoiceStatusPaid, InvoiceStatusCancelled},
}

// Valid reports whether s is a known status.
func (s InvoiceStatus) Valid() bool {
	for _, v := range AllInvoiceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Storable reports whether s may be persisted. Overdue is a read-side view only.
func (s InvoiceStatus) Storable() bool {
	return s.Valid() && s != InvoiceStatusOverdue
}

// IsTerminal reports whether no transition may leave s.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// CanTransitionTo reports whether the state machine lists s -> target.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	for _, t := range invoiceTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// AcceptsPayments reports whether a payment may be recorded in s.
func (s InvoiceStatus) AcceptsPayments() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusPending || s == InvoiceStatusPartial
}

// Badge maps the status to display metadata.
func (s InvoiceStatus) Badge() Badge {
	switch s {
	case InvoiceStatusDraft:
		return Badge{Label: "Draft", Tone: ToneNeutral}
	case InvoiceStatusSent:
		return Badge{Label: "Sent", Tone: ToneInfo}
	case InvoiceStatusPending:
		return Badge{Label: "Awaiting payment", Tone: ToneInfo}
	case InvoiceStatusPartial:
		return Badge{Label: "Partially paid", Tone: ToneWarning}
	case InvoiceStatusPaid:
		return Badge{Label: "Paid", Tone: ToneSuccess}
	case InvoiceStatusOverdue:
		return Badge{Label: "Overdue", Tone: ToneDanger}
	case InvoiceStatusCancelled:
		return Badge{Label: "Cancelled", Tone: ToneNeutral}
	}
	return Badge{Label: string(s), Tone: ToneUnknown}
}
