package repository

import (
	"context"
	"encoding/json"
	"sort"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

const defaultPaymentsTableName = "payments"

type paymentItem struct {
	ID                 string                 `dynamodbav:"id"`
	InvoiceID          string                 `dynamodbav:"invoice_id"`
	Amount             string                 `dynamodbav:"amount"`
	Date               string                 `dynamodbav:"date"`
	Status             string                 `dynamodbav:"status"`
	Source             string                 `dynamodbav:"source"`
	ProviderPaymentID  string                 `dynamodbav:"provider_payment_id,omitempty"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// PaymentDynamoRepository persists invoice payments in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: invoice_id-index (PK: invoice_id), projection ALL
type PaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toPaymentItem(p)); err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	var it paymentItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it)
}

// ListByInvoiceID returns the payments of one invoice, oldest first.
func (r *PaymentDynamoRepository) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error) {
	raw, err := queryIndex(ctx, r.ddb, r.tableName, indexInvoiceID, "invoice_id", invoiceID, 0)
	if err != nil {
		return nil, err
	}
	var items []paymentItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, err
	}
	out := make([]entities.Payment, 0, len(items))
	for _, it := range items {
		p, err := fromPaymentItem(it)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                 p.ID,
		InvoiceID:          p.InvoiceID,
		Amount:             p.Amount.StringFixed(2),
		Date:               formatTime(p.Date),
		Status:             string(p.Status),
		Source:             string(p.Source),
		ProviderPaymentID:  p.ProviderPaymentID,
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromPaymentItem(it paymentItem) (entities.Payment, error) {
	var raw json.RawMessage
	if it.ProviderPayloadRaw != "" {
		raw = json.RawMessage(it.ProviderPayloadRaw)
	}
	d := newItemDecoder("payment", it.ID)
	p := entities.Payment{
		ID:                 it.ID,
		InvoiceID:          it.InvoiceID,
		Amount:             d.decimal("amount", it.Amount),
		Date:               d.time("date", it.Date),
		Status:             entities.PaymentStatus(it.Status),
		Source:             entities.PaymentSource(it.Source),
		ProviderPaymentID:  it.ProviderPaymentID,
		ProviderPayload:    it.ProviderPayload,
		ProviderPayloadRaw: raw,
	}
	if d.err != nil {
		return entities.Payment{}, d.err
	}
	return p, nil
}
