package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func TestEstimationStatus_OnlyListedTransitionsAreLegal(t *testing.T) {
	legal := map[[2]EstimationStatus]bool{
		{EstimationStatusDraft, EstimationStatusSent}:    true,
		{EstimationStatusSent, EstimationStatusApproved}: true,
		{EstimationStatusSent, EstimationStatusRejected}: true,
		{EstimationStatusSent, EstimationStatusExpired}:  true,
	}
	for _, from := range AllEstimationStatuses {
		for _, to := range AllEstimationStatuses {
			assert.Equal(t, legal[[2]EstimationStatus{from, to}], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestInvoiceStatus_OnlyListedTransitionsAreLegal(t *testing.T) {
	legal := map[[2]InvoiceStatus]bool{
		{InvoiceStatusDraft, InvoiceStatusSent}:        true,
		{InvoiceStatusDraft, InvoiceStatusCancelled}:   true,
		{InvoiceStatusSent, InvoiceStatusPending}:      true,
		{InvoiceStatusSent, InvoiceStatusPartial}:      true,
		{InvoiceStatusSent, InvoiceStatusPaid}:         true,
		{InvoiceStatusSent, InvoiceStatusCancelled}:    true,
		{InvoiceStatusPending, InvoiceStatusPartial}:   true,
		{InvoiceStatusPending, InvoiceStatusPaid}:      true,
		{InvoiceStatusPending, InvoiceStatusCancelled}: true,
		{InvoiceStatusPartial, InvoiceStatusPartial}:   true,
		{InvoiceStatusPartial, InvoiceStatusPaid}:      true,
		{InvoiceStatusPartial, InvoiceStatusCancelled}: true,
	}
	for _, from := range AllInvoiceStatuses {
		for _, to := range AllInvoiceStatuses {
			assert.Equal(t, legal[[2]InvoiceStatus{from, to}], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, InvoiceStatusOverdue.Storable())
}

func TestBadges_CoverEveryStatus(t *testing.T) {
	for _, s := range AllEstimationStatuses {
		assert.NotEqual(t, ToneUnknown, s.Badge().Tone, "estimation status %s", s)
	}
	for _, s := range AllInvoiceStatuses {
		assert.NotEqual(t, ToneUnknown, s.Badge().Tone, "invoice status %s", s)
	}
	assert.Equal(t, ToneUnknown, EstimationStatus("bogus").Badge().Tone)
}

func TestEstimation_SendRequiresPDF(t *testing.T) {
	e := Estimation{Status: EstimationStatusDraft}

	err := e.MarkSent(now)
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, EstimationStatusDraft, e.Status)
	assert.Nil(t, e.SentAt)

	require.NoError(t, e.AttachPDF("https://pdf/1.pdf", "pub-1", now))
	require.NoError(t, e.MarkSent(now))
	assert.Equal(t, EstimationStatusSent, e.Status)
	require.NotNil(t, e.SentAt)

	var ie *IllegalStateError
	require.ErrorAs(t, e.AttachPDF("https://pdf/2.pdf", "pub-2", now), &ie)
}

func TestEstimation_LazyExpiry(t *testing.T) {
	past := now.Add(-time.Hour)
	e := Estimation{Status: EstimationStatusSent, ValidUntil: &past}

	assert.True(t, e.IsExpired(now))
	assert.Equal(t, EstimationStatusExpired, e.EffectiveStatus(now))
	assert.Equal(t, EstimationStatusSent, e.Status, "expiry must not write")

	var te *InvalidTransitionError
	require.ErrorAs(t, e.Decide(DecisionApproved, now), &te)
	assert.Equal(t, "expired", te.From)
}

func TestEstimation_Decisions(t *testing.T) {
	future := now.Add(time.Hour)
	e := Estimation{Status: EstimationStatusSent, ValidUntil: &future}
	require.NoError(t, e.Decide(DecisionApproved, now))
	assert.Equal(t, EstimationStatusApproved, e.Status)
	require.NotNil(t, e.ApprovedAt)
	assert.True(t, e.IsApproved())

	var te *InvalidTransitionError
	require.ErrorAs(t, e.Decide(DecisionRejected, now), &te)

	draft := Estimation{Status: EstimationStatusDraft}
	require.ErrorAs(t, draft.Decide(DecisionRejected, now), &te)

	var ve *ValidationError
	sent := Estimation{Status: EstimationStatusSent}
	require.ErrorAs(t, sent.Decide("maybe", now), &ve)
}

func TestEstimation_VoidBlocksTransitions(t *testing.T) {
	e := Estimation{Status: EstimationStatusSent}
	require.NoError(t, e.Void("admin-1", "duplicate", now))
	assert.True(t, e.IsVoided())

	var ie *IllegalStateError
	require.ErrorAs(t, e.Decide(DecisionApproved, now), &ie)
	require.ErrorAs(t, e.Void("admin-1", "again", now), &ie)

	draft := Estimation{Status: EstimationStatusDraft}
	require.ErrorAs(t, draft.Void("admin-1", "x", now), &ie)
}

func TestInvoice_Overdue(t *testing.T) {
	past := now.Add(-24 * time.Hour)
	inv := Invoice{Status: InvoiceStatusPending, DueDate: &past}
	assert.True(t, inv.IsOverdue(now))
	assert.Equal(t, InvoiceStatusOverdue, inv.EffectiveStatus(now))

	inv.Status = InvoiceStatusPaid
	assert.False(t, inv.IsOverdue(now))
	inv.Status = InvoiceStatusCancelled
	assert.False(t, inv.IsOverdue(now))

	inv.Status = InvoiceStatusPending
	inv.DueDate = nil
	assert.False(t, inv.IsOverdue(now))
}

func TestInvoice_PaymentTransitions(t *testing.T) {
	inv := Invoice{Status: InvoiceStatusDraft}
	var te *InvalidTransitionError
	var ise *IllegalStateError
	require.ErrorAs(t, inv.ApplyPayment(decimal.NewFromInt(1), decimal.NewFromInt(1), now), &ise)
	assert.Equal(t, "record payment not allowed while document is draft", ise.Error())

	inv.Status = InvoiceStatusSent
	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(100), decimal.NewFromInt(185), now))
	assert.Equal(t, InvoiceStatusPartial, inv.Status)
	assert.Nil(t, inv.PaidAt)

	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(285), decimal.Zero, now))
	assert.Equal(t, InvoiceStatusPaid, inv.Status)
	require.NotNil(t, inv.PaidAt)

	require.ErrorAs(t, inv.Cancel(now), &te)
	require.ErrorAs(t, inv.ApplyPayment(decimal.NewFromInt(285), decimal.Zero, now), &ise)
	assert.Equal(t, "paid", ise.Status)
}

func TestInvoice_PendingAndCancel(t *testing.T) {
	inv := Invoice{Status: InvoiceStatusDraft}
	var te *InvalidTransitionError
	require.ErrorAs(t, inv.MarkPending(now), &te)

	inv.PDFURL = "https://pdf/inv.pdf"
	require.NoError(t, inv.MarkSent(now))
	require.NoError(t, inv.MarkPending(now))
	require.ErrorAs(t, inv.MarkPending(now), &te)

	require.NoError(t, inv.Cancel(now))
	assert.Equal(t, InvoiceStatusCancelled, inv.Status)
	require.NotNil(t, inv.CancelledAt)
}

func TestActor_Permissions(t *testing.T) {
	assert.True(t, Actor{ID: "u1", Role: RoleOperator}.CanEditDraftOf("u1"))
	assert.False(t, Actor{ID: "u2", Role: RoleOperator}.CanEditDraftOf("u1"))
	assert.True(t, Actor{ID: "u2", Role: RoleServiceHead}.CanEditDraftOf("u1"))
	assert.False(t, Actor{Role: RoleServiceHead}.CanVoid())
	assert.True(t, Actor{Role: RoleAdmin}.CanVoid())
	assert.Equal(t, RoleAdmin, ParseRole(" ADMIN "))
	assert.Equal(t, RoleOperator, ParseRole("root"))
}

func TestClientSnapshot_FillBlanks(t *testing.T) {
	s := ClientSnapshot{Name: "Explicit"}.FillBlanks(ClientSnapshot{Name: "Directory", Email: "a@b.c"})
	assert.Equal(t, "Explicit", s.Name)
	assert.Equal(t, "a@b.c", s.Email)
}
