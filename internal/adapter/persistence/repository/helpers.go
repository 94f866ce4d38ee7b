package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"findoc_service/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	indexUUID          = "uuid-index"
	indexOrderRef      = "order_ref-index"
	indexEstimationRef = "estimation_ref-index"
	indexInvoiceID     = "invoice_id-index"
)

// DynamoAPI is the subset of the DynamoDB client the repositories use.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

type lineItemItem struct {
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description,omitempty"`
	Quantity    string `dynamodbav:"quantity"`
	Rate        string `dynamodbav:"rate"`
	Amount      string `dynamodbav:"amount"`
}

type totalsItem struct {
	Subtotal       string `dynamodbav:"subtotal"`
	TaxPercentage  string `dynamodbav:"tax_percentage"`
	TaxAmount      string `dynamodbav:"tax_amount"`
	DiscountAmount string `dynamodbav:"discount_amount"`
	TotalAmount    string `dynamodbav:"total_amount"`
}

type clientItem struct {
	Name    string `dynamodbav:"client_name,omitempty"`
	Email   string `dynamodbav:"client_email,omitempty"`
	Phone   string `dynamodbav:"client_phone,omitempty"`
	Address string `dynamodbav:"client_address,omitempty"`
}

type voidItem struct {
	VoidedAt   string `dynamodbav:"voided_at,omitempty"`
	VoidedBy   string `dynamodbav:"voided_by,omitempty"`
	VoidReason string `dynamodbav:"void_reason,omitempty"`
}

func toLineItemItems(items []entities.LineItem) []lineItemItem {
	out := make([]lineItemItem, 0, len(items))
	for _, it := range items {
		out = append(out, lineItemItem{
			Name:        it.Name,
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			Rate:        it.Rate.String(),
			Amount:      it.Amount.StringFixed(2),
		})
	}
	return out
}

func (d *itemDecoder) lineItems(field string, items []lineItemItem) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(items))
	for i, it := range items {
		prefix := fmt.Sprintf("%s[%d]", field, i)
		out = append(out, entities.LineItem{
			Name:        it.Name,
			Description: it.Description,
			Quantity:    d.decimal(prefix+".quantity", it.Quantity),
			Rate:        d.decimal(prefix+".rate", it.Rate),
			Amount:      d.decimal(prefix+".amount", it.Amount),
		})
	}
	return out
}

func toTotalsItem(t entities.Totals) totalsItem {
	return totalsItem{
		Subtotal:       t.Subtotal.StringFixed(2),
		TaxPercentage:  t.TaxPercentage.String(),
		TaxAmount:      t.TaxAmount.StringFixed(2),
		DiscountAmount: t.DiscountAmount.String(),
		TotalAmount:    t.TotalAmount.StringFixed(2),
	}
}

func (d *itemDecoder) totals(t totalsItem) entities.Totals {
	return entities.Totals{
		Subtotal:       d.decimal("subtotal", t.Subtotal),
		TaxPercentage:  d.decimal("tax_percentage", t.TaxPercentage),
		TaxAmount:      d.decimal("tax_amount", t.TaxAmount),
		DiscountAmount: d.decimal("discount_amount", t.DiscountAmount),
		TotalAmount:    d.decimal("total_amount", t.TotalAmount),
	}
}

func toClientItem(c entities.ClientSnapshot) clientItem {
	return clientItem{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

func fromClientItem(c clientItem) entities.ClientSnapshot {
	return entities.ClientSnapshot{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

func toVoidItem(v entities.VoidInfo) voidItem {
	return voidItem{VoidedAt: formatOptionalTime(v.VoidedAt), VoidedBy: v.VoidedBy, VoidReason: v.VoidReason}
}

func (d *itemDecoder) void(v voidItem) entities.VoidInfo {
	return entities.VoidInfo{VoidedAt: d.optionalTime("voided_at", v.VoidedAt), VoidedBy: v.VoidedBy, VoidReason: v.VoidReason}
}

// ErrCorruptRecord is returned when a stored attribute cannot be parsed back.
var ErrCorruptRecord = errors.New("corrupt stored record")

// itemDecoder parses the string attributes of one stored record and keeps the first failure.
// A missing attribute decodes to the zero value; an unparseable one is an error.
type itemDecoder struct {
	kind string
	id   string
	err  error
}

func newItemDecoder(kind, id string) *itemDecoder {
	return &itemDecoder{kind: kind, id: id}
}

func (d *itemDecoder) fail(field, value string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: %s %s: field %s=%q: %v", ErrCorruptRecord, d.kind, d.id, field, value, err)
	}
}

func (d *itemDecoder) decimal(field, s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		d.fail(field, s, err)
		return decimal.Zero
	}
	return v
}

func (d *itemDecoder) time(field, s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		d.fail(field, s, err)
	}
	return t
}

func (d *itemDecoder) optionalTime(field, s string) *time.Time {
	if s == "" {
		return nil
	}
	t := d.time(field, s)
	return &t
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func stringKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{name: &types.AttributeValueMemberS{Value: value}}
}

func versionValue(v int64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(v, 10)}
}

// putNew writes item only if no record with the same id exists.
func putNew(ctx context.Context, ddb DynamoAPI, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	return err
}

// putVersioned replaces item only when the stored version equals expectedVersion.
func putVersioned(ctx context.Context, ddb DynamoAPI, table string, item any, expectedVersion int64) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": versionValue(expectedVersion),
		},
	})
	return conditionToConflict(err)
}

// deleteVersioned removes a record only when the stored version equals expectedVersion.
func deleteVersioned(ctx context.Context, ddb DynamoAPI, table, id string, expectedVersion int64) error {
	_, err := ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(table),
		Key:                 stringKey("id", id),
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": versionValue(expectedVersion),
		},
	})
	return conditionToConflict(err)
}

func conditionToConflict(err error) error {
	if err == nil {
		return nil
	}
	var cfe *types.ConditionalCheckFailedException
	if errors.As(err, &cfe) {
		return entities.ErrVersionConflict
	}
	return err
}

// getByID does a consistent read by primary key. found is false when nothing matched.
func getByID(ctx context.Context, ddb DynamoAPI, table, id string, out any) (bool, error) {
	res, err := ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	return true, attributevalue.UnmarshalMap(res.Item, out)
}

// queryIndex pages through a GSI (projection ALL) and returns every raw item for key = value.
func queryIndex(ctx context.Context, ddb DynamoAPI, table, index, key, value string, limit int32) ([]map[string]types.AttributeValue, error) {
	var (
		items    []map[string]types.AttributeValue
		startKey map[string]types.AttributeValue
	)
	for {
		in := &dynamodb.QueryInput{
			TableName:                 aws.String(table),
			IndexName:                 aws.String(index),
			KeyConditionExpression:    aws.String("#k = :v"),
			ExpressionAttributeNames:  map[string]string{"#k": key},
			ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
			ExclusiveStartKey:         startKey,
		}
		if limit > 0 {
			in.Limit = aws.Int32(limit)
		}
		out, err := ddb.Query(ctx, in)
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if limit > 0 && int32(len(items)) >= limit {
			return items, nil
		}
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// idByUUID resolves the internal key of a document from its external uuid.
func idByUUID(ctx context.Context, ddb DynamoAPI, table, uuid string) (string, error) {
	items, err := queryIndex(ctx, ddb, table, indexUUID, "uuid", uuid, 1)
	if err != nil || len(items) == 0 {
		return "", err
	}
	var ref struct {
		ID string `dynamodbav:"id"`
	}
	if err := attributevalue.UnmarshalMap(items[0], &ref); err != nil {
		return "", err
	}
	return ref.ID, nil
}
