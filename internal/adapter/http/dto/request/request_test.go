package request

import (
	"encoding/json"
	"errors"
	"testing"

	"findoc_service/internal/domain/entities"
)

func TestCreateEstimationRequest_ToInput(t *testing.T) {
	var r CreateEstimationRequest
	body := `{"order_ref":" os-1 ","title":" Brakes ","cost_breakdown":[{"name":" Pads ","quantity":"2","rate":100},{"name":"Labour","rate":"40.5"}],"tax_percentage":12.5,"client":{"email":" bruno@client.test "}}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := r.ToInput()
	if in.OrderRef != "os-1" || in.Title != "Brakes" {
		t.Fatalf("expected trimmed header, got %+v", in)
	}
	if len(in.Items) != 2 || in.Items[0].Name != "Pads" {
		t.Fatalf("unexpected items: %+v", in.Items)
	}
	if in.Items[0].Quantity == nil || in.Items[0].Quantity.String() != "2" {
		t.Fatalf("expected quantity 2, got %v", in.Items[0].Quantity)
	}
	if in.Items[1].Quantity != nil {
		t.Fatalf("absent quantity must stay nil so the calculator defaults it")
	}
	if in.Items[1].Rate.String() != "40.5" || in.TaxPercentage.String() != "12.5" {
		t.Fatalf("unexpected decimals: %+v", in)
	}
	if in.Client.Email != "bruno@client.test" {
		t.Fatalf("unexpected client: %+v", in.Client)
	}
}

func TestUpdateRequests_KeepAbsentFieldsNil(t *testing.T) {
	var est UpdateEstimationRequest
	if err := json.Unmarshal([]byte(`{"title":"New"}`), &est); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := est.ToInput()
	if in.Items != nil || in.TaxPercentage != nil || in.Client != nil {
		t.Fatalf("absent fields must stay nil: %+v", in)
	}
	if in.Title == nil || *in.Title != "New" {
		t.Fatalf("expected title patch")
	}

	var inv UpdateInvoiceRequest
	if err := json.Unmarshal([]byte(`{"line_items":[],"client":{"name":"Bruno"}}`), &inv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	patch := inv.ToInput()
	if patch.Items == nil || len(patch.Items) != 0 {
		t.Fatalf("explicit empty list must reach the calculator, got %v", patch.Items)
	}
	if patch.Client == nil || patch.Client.Name != "Bruno" {
		t.Fatalf("unexpected client patch: %+v", patch.Client)
	}
}

func TestDecisionRequest_ResolveDecision(t *testing.T) {
	d, err := DecisionRequest{Decision: " Approved "}.ResolveDecision()
	if err != nil || d != entities.DecisionApproved {
		t.Fatalf("expected approved, got %q %v", d, err)
	}
	d, err = DecisionRequest{Decision: "rejected"}.ResolveDecision()
	if err != nil || d != entities.DecisionRejected {
		t.Fatalf("expected rejected, got %q %v", d, err)
	}
	if _, err := (DecisionRequest{Decision: "maybe"}).ResolveDecision(); !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}

func TestRecordPaymentRequest_ResolveAmount(t *testing.T) {
	var r RecordPaymentRequest
	if _, err := r.ResolveAmount(); !errors.Is(err, ErrAmountRequired) {
		t.Fatalf("expected ErrAmountRequired, got %v", err)
	}
	if err := json.Unmarshal([]byte(`{"amount":"85.50"}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	amount, err := r.ResolveAmount()
	if err != nil || amount.StringFixed(2) != "85.50" {
		t.Fatalf("unexpected amount %s %v", amount, err)
	}
}

func TestParseChargeRequest(t *testing.T) {
	req, err := ParseChargeRequest([]byte("   "))
	if err != nil || string(req.MPPayload) != "{}" || req.Amount != nil {
		t.Fatalf("expected empty payload, got %+v err=%v", req, err)
	}

	if _, err := ParseChargeRequest([]byte("{invalid")); !errors.Is(err, ErrInvalidJSONBody) {
		t.Fatalf("expected ErrInvalidJSONBody, got %v", err)
	}

	if _, err := ParseChargeRequest([]byte(`{"mp_payload":null}`)); !errors.Is(err, ErrEmptyMPPayload) {
		t.Fatalf("expected ErrEmptyMPPayload, got %v", err)
	}

	if _, err := ParseChargeRequest([]byte(`{"mp_payload":{},"amount":"ten"}`)); !errors.Is(err, ErrInvalidAmountJSON) {
		t.Fatalf("expected ErrInvalidAmountJSON, got %v", err)
	}

	req, err = ParseChargeRequest([]byte(`{"amount":85,"mp_payload":{"payment_method_id":"pix"}}`))
	if err != nil || string(req.MPPayload) != `{"payment_method_id":"pix"}` {
		t.Fatalf("expected wrapped payload, got %s err=%v", req.MPPayload, err)
	}
	if req.Amount == nil || req.Amount.StringFixed(2) != "85.00" {
		t.Fatalf("expected amount 85, got %v", req.Amount)
	}

	req, err = ParseChargeRequest([]byte(`{"payment_method_id":"pix"}`))
	if err != nil || string(req.MPPayload) != `{"payment_method_id":"pix"}` || req.Amount != nil {
		t.Fatalf("expected raw body payload, got %+v err=%v", req, err)
	}
}
