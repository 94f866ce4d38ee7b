package repository

import (
	"context"
	"fmt"
	"strconv"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultInvoicesTableName = "invoices"
	defaultCountersTableName = "counters"
)

type invoiceItem struct {
	ID            string         `dynamodbav:"id"`
	UUID          string         `dynamodbav:"uuid"`
	InvoiceNumber string         `dynamodbav:"invoice_number"`
	OrderRef      string         `dynamodbav:"order_ref"`
	EstimationRef string         `dynamodbav:"estimation_ref,omitempty"`
	LineItems     []lineItemItem `dynamodbav:"line_items"`
	totalsItem
	AmountPaid  string `dynamodbav:"amount_paid"`
	BalanceDue  string `dynamodbav:"balance_due"`
	DueDate     string `dynamodbav:"due_date,omitempty"`
	Status      string `dynamodbav:"status"`
	PDFURL      string `dynamodbav:"pdf_url,omitempty"`
	PDFPublicID string `dynamodbav:"pdf_public_id,omitempty"`
	SenderName  string `dynamodbav:"sender_name,omitempty"`
	SenderEmail string `dynamodbav:"sender_email,omitempty"`
	clientItem
	CreatedBy   string `dynamodbav:"created_by"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
	SentAt      string `dynamodbav:"sent_at,omitempty"`
	PaidAt      string `dynamodbav:"paid_at,omitempty"`
	CancelledAt string `dynamodbav:"cancelled_at,omitempty"`
	voidItem
	Version int64 `dynamodbav:"version"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI uuid-index, order_ref-index, estimation_ref-index, projection ALL
//
// The stored status is never "overdue"; that view is derived on read.
type InvoiceDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb DynamoAPI) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	if err := checkStorable(inv.Status); err != nil {
		return entities.Invoice{}, err
	}
	if err := putNew(ctx, r.ddb, r.tableName, toInvoiceItem(inv)); err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	var it invoiceItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it)
}

func (r *InvoiceDynamoRepository) GetByUUID(ctx context.Context, uuid string) (entities.Invoice, error) {
	id, err := idByUUID(ctx, r.ddb, r.tableName, uuid)
	if err != nil || id == "" {
		return entities.Invoice{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *InvoiceDynamoRepository) ListByOrderRef(ctx context.Context, orderRef string) ([]entities.Invoice, error) {
	return r.list(ctx, indexOrderRef, "order_ref", orderRef)
}

func (r *InvoiceDynamoRepository) ListByEstimationRef(ctx context.Context, estimationRef string) ([]entities.Invoice, error) {
	return r.list(ctx, indexEstimationRef, "estimation_ref", estimationRef)
}

func (r *InvoiceDynamoRepository) list(ctx context.Context, index, key, value string) ([]entities.Invoice, error) {
	raw, err := queryIndex(ctx, r.ddb, r.tableName, index, key, value, 0)
	if err != nil {
		return nil, err
	}
	var items []invoiceItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, err
	}
	out := make([]entities.Invoice, 0, len(items))
	for _, it := range items {
		inv, err := fromInvoiceItem(it)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *InvoiceDynamoRepository) Update(ctx context.Context, inv entities.Invoice, expectedVersion int64) (entities.Invoice, error) {
	if err := checkStorable(inv.Status); err != nil {
		return entities.Invoice{}, err
	}
	if err := putVersioned(ctx, r.ddb, r.tableName, toInvoiceItem(inv), expectedVersion); err != nil {
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) Delete(ctx context.Context, id string, expectedVersion int64) error {
	return deleteVersioned(ctx, r.ddb, r.tableName, id, expectedVersion)
}

func checkStorable(s entities.InvoiceStatus) error {
	if !s.Storable() {
		return fmt.Errorf("invoice status %q cannot be stored", s)
	}
	return nil
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	return invoiceItem{
		ID:            inv.ID,
		UUID:          inv.UUID,
		InvoiceNumber: inv.InvoiceNumber,
		OrderRef:      inv.OrderRef,
		EstimationRef: inv.EstimationRef,
		LineItems:     toLineItemItems(inv.LineItems),
		totalsItem:    toTotalsItem(inv.Totals),
		AmountPaid:    inv.AmountPaid.StringFixed(2),
		BalanceDue:    inv.BalanceDue.StringFixed(2),
		DueDate:       formatOptionalTime(inv.DueDate),
		Status:        string(inv.Status),
		PDFURL:        inv.PDFURL,
		PDFPublicID:   inv.PDFPublicID,
		SenderName:    inv.SenderName,
		SenderEmail:   inv.SenderEmail,
		clientItem:    toClientItem(inv.Client),
		CreatedBy:     inv.CreatedBy,
		CreatedAt:     formatTime(inv.CreatedAt),
		UpdatedAt:     formatTime(inv.UpdatedAt),
		SentAt:        formatOptionalTime(inv.SentAt),
		PaidAt:        formatOptionalTime(inv.PaidAt),
		CancelledAt:   formatOptionalTime(inv.CancelledAt),
		voidItem:      toVoidItem(inv.VoidInfo),
		Version:       inv.Version,
	}
}

func fromInvoiceItem(it invoiceItem) (entities.Invoice, error) {
	d := newItemDecoder("invoice", it.ID)
	inv := entities.Invoice{
		ID:            it.ID,
		UUID:          it.UUID,
		InvoiceNumber: it.InvoiceNumber,
		OrderRef:      it.OrderRef,
		EstimationRef: it.EstimationRef,
		LineItems:     d.lineItems("line_items", it.LineItems),
		Totals:        d.totals(it.totalsItem),
		AmountPaid:    d.decimal("amount_paid", it.AmountPaid),
		BalanceDue:    d.decimal("balance_due", it.BalanceDue),
		DueDate:       d.optionalTime("due_date", it.DueDate),
		Status:        entities.InvoiceStatus(it.Status),
		PDFURL:        it.PDFURL,
		PDFPublicID:   it.PDFPublicID,
		SenderName:    it.SenderName,
		SenderEmail:   it.SenderEmail,
		Client:        fromClientItem(it.clientItem),
		CreatedBy:     it.CreatedBy,
		CreatedAt:     d.time("created_at", it.CreatedAt),
		UpdatedAt:     d.time("updated_at", it.UpdatedAt),
		SentAt:        d.optionalTime("sent_at", it.SentAt),
		PaidAt:        d.optionalTime("paid_at", it.PaidAt),
		CancelledAt:   d.optionalTime("cancelled_at", it.CancelledAt),
		VoidInfo:      d.void(it.voidItem),
		Version:       it.Version,
	}
	if d.err != nil {
		return entities.Invoice{}, d.err
	}
	return inv, nil
}

// CounterDynamoRepository hands out invoice numbers from an atomic counter item per scope.
//
// Table requirements:
//   - PK: scope (string)
type CounterDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IInvoiceNumberSequence = (*CounterDynamoRepository)(nil)

func NewCounterDynamoRepository(ddb DynamoAPI) *CounterDynamoRepository {
	return &CounterDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
	}
}

func (r *CounterDynamoRepository) Next(ctx context.Context, scope string) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("scope", scope),
		UpdateExpression:          aws.String("ADD #value :one"),
		ExpressionAttributeNames:  map[string]string{"#value": "value"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	v, ok := out.Attributes["value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s returned no value", scope)
	}
	return strconv.ParseInt(v.Value, 10, 64)
}
