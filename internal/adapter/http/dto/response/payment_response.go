package response

import (
	"time"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/usecase"
)

type PaymentResponse struct {
	PaymentID         string    `json:"payment_id"`
	ID                string    `json:"id"`
	InvoiceID         string    `json:"invoice_id"`
	Amount            string    `json:"amount"`
	PaymentDate       time.Time `json:"payment_date"`
	Date              time.Time `json:"date"`
	Status            string    `json:"status"`
	Source            string    `json:"source"`
	ProviderPaymentID string    `json:"provider_payment_id,omitempty"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:         p.ID,
		ID:                p.ID,
		InvoiceID:         p.InvoiceID,
		Amount:            p.Amount.StringFixed(2),
		PaymentDate:       p.Date,
		Date:              p.Date,
		Status:            string(p.Status),
		Source:            string(p.Source),
		ProviderPaymentID: p.ProviderPaymentID,
		MPPayloadRaw:      string(p.ProviderPayloadRaw),
		MPPayload:         p.ProviderPayload,
	}
}

func FromPayments(list []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromPayment(p))
	}
	return out
}

// ChargeResponse is the payment that was recorded and the invoice state after it.
type ChargeResponse struct {
	Payment PaymentResponse `json:"payment"`
	Invoice InvoiceResponse `json:"invoice"`
}

func FromChargeResult(res usecase.ChargeResult, now time.Time) ChargeResponse {
	return ChargeResponse{
		Payment: FromPayment(res.Payment),
		Invoice: FromInvoice(res.Invoice, now),
	}
}
