package request

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountRequired    = errors.New("amount is required")
	ErrInvalidJSONBody   = errors.New("request body is not valid json")
	ErrEmptyMPPayload    = errors.New("mp_payload cannot be empty")
	ErrInvalidAmountJSON = errors.New("amount must be a number")
)

// RecordPaymentRequest is the payload of POST /invoices/:uuid/payments/record.
type RecordPaymentRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

func (r RecordPaymentRequest) ResolveAmount() (decimal.Decimal, error) {
	if r.Amount == nil {
		return decimal.Zero, ErrAmountRequired
	}
	return *r.Amount, nil
}

// ChargeRequest is the payload of POST /invoices/:uuid/payments.
//
// The body is either the raw Mercado Pago payload, or an envelope
// {"amount": 85.00, "mp_payload": {...}}. mp_payload is forwarded as-is to support varying
// provider schemas. Amount defaults to the invoice balance when absent.
type ChargeRequest struct {
	Amount    *decimal.Decimal
	MPPayload json.RawMessage
}

// ParseChargeRequest decodes either form of the charge body. An empty body is an empty payload.
func ParseChargeRequest(raw []byte) (ChargeRequest, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return ChargeRequest{MPPayload: json.RawMessage("{}")}, nil
	}
	if !json.Valid(raw) {
		return ChargeRequest{}, ErrInvalidJSONBody
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			w := strings.TrimSpace(string(wrapped))
			if w == "" || w == "null" {
				return ChargeRequest{}, ErrEmptyMPPayload
			}
			req := ChargeRequest{MPPayload: wrapped}
			if rawAmount, ok := envelope["amount"]; ok && strings.TrimSpace(string(rawAmount)) != "null" {
				var amount decimal.Decimal
				if err := json.Unmarshal(rawAmount, &amount); err != nil {
					return ChargeRequest{}, ErrInvalidAmountJSON
				}
				req.Amount = &amount
			}
			return req, nil
		}
	}

	return ChargeRequest{MPPayload: json.RawMessage(raw)}, nil
}
