package response

import (
	"encoding/json"
	"testing"
	"time"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/usecase"

	"github.com/shopspring/decimal"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFromEstimation_EffectiveStatus(t *testing.T) {
	past := now.Add(-time.Hour)
	e := entities.Estimation{
		UUID:          "est-1",
		OrderRef:      "os-1",
		CostBreakdown: []entities.LineItem{{Name: "Pads", Quantity: d("2"), Rate: d("100"), Amount: d("200")}},
		Totals:        entities.Totals{Subtotal: d("200"), TaxPercentage: d("12.5"), TaxAmount: d("25"), DiscountAmount: decimal.Zero, TotalAmount: d("225")},
		ValidUntil:    &past,
		Status:        entities.EstimationStatusSent,
	}

	res := FromEstimation(e, now)
	if res.Status != "expired" || res.StoredStatus != "sent" || !res.IsExpired {
		t.Fatalf("expected lazily expired view, got %+v", res.StatusView)
	}
	if res.StatusLabel != "Expired" || res.StatusTone != "warning" {
		t.Fatalf("unexpected badge: %+v", res.StatusView)
	}
	if res.TotalAmount != "225.00" || res.CostBreakdown[0].Rate != "100.00" || res.TaxPercentage != "12.5" {
		t.Fatalf("unexpected money rendering: %+v", res.TotalsResponse)
	}

	b, _ := json.Marshal(res)
	var flat map[string]interface{}
	_ = json.Unmarshal(b, &flat)
	for _, key := range []string{"status", "status_label", "status_tone", "is_expired", "total_amount", "is_voided"} {
		if _, ok := flat[key]; !ok {
			t.Fatalf("expected flattened key %q in %s", key, b)
		}
	}
}

func TestFromInvoice_Overdue(t *testing.T) {
	due := now.Add(-24 * time.Hour)
	inv := entities.Invoice{
		UUID:       "inv-1",
		Status:     entities.InvoiceStatusPartial,
		Totals:     entities.Totals{TotalAmount: d("285")},
		AmountPaid: d("85"),
		BalanceDue: d("200"),
		DueDate:    &due,
	}

	res := FromInvoice(inv, now)
	if res.Status != "overdue" || res.StoredStatus != "partial" || !res.IsOverdue {
		t.Fatalf("expected overdue view, got %+v", res.StatusView)
	}
	if res.StatusTone != "danger" || res.BalanceDue != "200.00" || res.AmountPaid != "85.00" {
		t.Fatalf("unexpected invoice rendering: %+v", res)
	}

	inv.Status = entities.InvoiceStatusPaid
	if res := FromInvoice(inv, now); res.IsOverdue || res.Status != "paid" {
		t.Fatalf("paid invoice is never overdue: %+v", res.StatusView)
	}
}

func TestFromChargeResult(t *testing.T) {
	raw := json.RawMessage(`{"id":123}`)
	res := FromChargeResult(usecase.ChargeResult{
		Payment: entities.Payment{
			ID:                 "pay-1",
			InvoiceID:          "inv-1",
			Amount:             d("85"),
			Date:               now,
			Status:             entities.PaymentStatusApproved,
			Source:             entities.PaymentSourceGateway,
			ProviderPayloadRaw: raw,
			ProviderPayload:    map[string]interface{}{"a": "b"},
		},
		Invoice: entities.Invoice{UUID: "inv-1", Status: entities.InvoiceStatusPartial},
	}, now)

	if res.Payment.ID != "pay-1" || res.Payment.PaymentID != "pay-1" || res.Payment.Amount != "85.00" {
		t.Fatalf("unexpected payment: %+v", res.Payment)
	}
	if res.Payment.MPPayloadRaw != string(raw) || res.Payment.MPPayload["a"] != "b" {
		t.Fatalf("unexpected provider payload: %+v", res.Payment)
	}
	if res.Invoice.StatusLabel != "Partially paid" {
		t.Fatalf("unexpected invoice badge: %+v", res.Invoice.StatusView)
	}
	if len(FromPayments(nil)) != 0 {
		t.Fatalf("expected empty list")
	}
}
