package repository

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"findoc_service/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps items by id in memory and evaluates the version condition the way
// the real table does.
type fakeDynamo struct {
	items   map[string]map[string]types.AttributeValue
	puts    []*dynamodb.PutItemInput
	counter int64
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) conditionHolds(current map[string]types.AttributeValue, expr *string, values map[string]types.AttributeValue) bool {
	switch aws.ToString(expr) {
	case "attribute_not_exists(#id)":
		return current == nil
	case "attribute_exists(#id) AND #version = :expected":
		if current == nil {
			return false
		}
		v, _ := current["version"].(*types.AttributeValueMemberN)
		want, _ := values[":expected"].(*types.AttributeValueMemberN)
		return v != nil && want != nil && v.Value == want.Value
	}
	return true
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	id := in.Item["id"].(*types.AttributeValueMemberS).Value
	if !f.conditionHolds(f.items[id], in.ConditionExpression, in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[id]}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	id := in.Key["id"].(*types.AttributeValueMemberS).Value
	if !f.conditionHolds(f.items[id], in.ConditionExpression, in.ExpressionAttributeValues) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("conditional request failed")}
	}
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	key := in.ExpressionAttributeNames["#k"]
	want := in.ExpressionAttributeValues[":v"].(*types.AttributeValueMemberS).Value
	var out []map[string]types.AttributeValue
	for _, item := range f.items {
		if v, ok := item[key].(*types.AttributeValueMemberS); ok && v.Value == want {
			out = append(out, item)
		}
	}
	return &dynamodb.QueryOutput{Items: out}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, _ *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.counter++
	return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
		"value": &types.AttributeValueMemberN{Value: strconv.FormatInt(f.counter, 10)},
	}}, nil
}

func sampleEstimation() entities.Estimation {
	created := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	valid := created.Add(48 * time.Hour)
	return entities.Estimation{
		ID:       "id-1",
		UUID:     "est-1",
		OrderRef: "os-1",
		Title:    "Brakes",
		CostBreakdown: []entities.LineItem{
			{Name: "Pads", Quantity: decimal.RequireFromString("2"), Rate: decimal.RequireFromString("100"), Amount: decimal.RequireFromString("200")},
		},
		Totals: entities.Totals{
			Subtotal:       decimal.RequireFromString("200"),
			TaxPercentage:  decimal.RequireFromString("12.5"),
			TaxAmount:      decimal.RequireFromString("25"),
			DiscountAmount: decimal.Zero,
			TotalAmount:    decimal.RequireFromString("225"),
		},
		EstimatedTimelineDays: 2,
		ValidUntil:            &valid,
		Status:                entities.EstimationStatusDraft,
		Client:                entities.ClientSnapshot{Name: "Bruno", Email: "bruno@client.test"},
		CreatedBy:             "op-1",
		CreatedAt:             created,
		UpdatedAt:             created,
		Version:               1,
	}
}

func TestEstimationRepository_StoresFlatItemAndReadsBack(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewEstimationDynamoRepository(ddb)
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleEstimation())
	require.NoError(t, err)

	stored := ddb.items["id-1"]
	require.Contains(t, stored, "total_amount", "totals must be flattened into the item")
	require.Contains(t, stored, "client_email")
	assert.Equal(t, "225.00", stored["total_amount"].(*types.AttributeValueMemberS).Value)
	assert.NotContains(t, stored, "voided_at")

	got, err := repo.GetByUUID(ctx, "est-1")
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("225")))
	assert.True(t, got.TaxPercentage.Equal(decimal.RequireFromString("12.5")))
	require.Len(t, got.CostBreakdown, 1)
	assert.True(t, got.CostBreakdown[0].Quantity.Equal(decimal.RequireFromString("2")))
	require.NotNil(t, got.ValidUntil)
	assert.Equal(t, "bruno@client.test", got.Client.Email)
	assert.False(t, got.IsVoided())

	missing, err := repo.GetByUUID(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}

func TestEstimationRepository_CompareAndSet(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewEstimationDynamoRepository(ddb)
	ctx := context.Background()

	e := sampleEstimation()
	_, err := repo.Create(ctx, e)
	require.NoError(t, err)

	_, err = repo.Create(ctx, e)
	require.Error(t, err, "duplicate id must be refused")

	e.Version = 2
	_, err = repo.Update(ctx, e, 1)
	require.NoError(t, err)

	e.Version = 3
	_, err = repo.Update(ctx, e, 1)
	assert.True(t, errors.Is(err, entities.ErrVersionConflict), "stale write: %v", err)

	assert.True(t, errors.Is(repo.Delete(ctx, "id-1", 1), entities.ErrVersionConflict))
	require.NoError(t, repo.Delete(ctx, "id-1", 2))
}

func TestInvoiceRepository_RefusesDerivedStatus(t *testing.T) {
	repo := NewInvoiceDynamoRepository(newFakeDynamo())
	_, err := repo.Create(context.Background(), entities.Invoice{ID: "i", UUID: "u", Status: entities.InvoiceStatusOverdue})
	require.Error(t, err)
}

func TestInvoiceRepository_ListByEstimationRef(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewInvoiceDynamoRepository(ddb)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		_, err := repo.Create(ctx, entities.Invoice{
			ID: id, UUID: "u-" + id, OrderRef: "os-1", EstimationRef: "est-1",
			Status: entities.InvoiceStatusDraft, AmountPaid: decimal.Zero, BalanceDue: decimal.RequireFromString("10"),
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, entities.Invoice{ID: "c", UUID: "u-c", OrderRef: "os-2", Status: entities.InvoiceStatusDraft})
	require.NoError(t, err)

	list, err := repo.ListByEstimationRef(ctx, "est-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.NotContains(t, ddb.items["c"], "estimation_ref")
}

func TestCounterRepository_Next(t *testing.T) {
	repo := NewCounterDynamoRepository(newFakeDynamo())
	first, err := repo.Next(context.Background(), "invoice-2026")
	require.NoError(t, err)
	second, err := repo.Next(context.Background(), "invoice-2026")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestPaymentRepository_ListIsOrderedByDate(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewPaymentDynamoRepository(ddb)
	ctx := context.Background()
	base := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"p-late", "p-early"} {
		_, err := repo.Create(ctx, entities.Payment{
			ID: id, InvoiceID: "inv-1", Amount: decimal.RequireFromString("10"),
			Date: base.Add(time.Duration(1-i) * time.Hour), Status: entities.PaymentStatusApproved, Source: entities.PaymentSourceManual,
		})
		require.NoError(t, err)
	}

	list, err := repo.ListByInvoiceID(ctx, "inv-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p-early", list[0].ID)
	assert.Equal(t, "10.00", list[0].Amount.StringFixed(2))
}

func TestEstimationRepository_KeepsSubCentDiscount(t *testing.T) {
	ddb := newFakeDynamo()
	repo := NewEstimationDynamoRepository(ddb)
	ctx := context.Background()

	e := sampleEstimation()
	e.DiscountAmount = decimal.RequireFromString("0.005")
	_, err := repo.Create(ctx, e)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "id-1")
	require.NoError(t, err)
	assert.True(t, got.DiscountAmount.Equal(decimal.RequireFromString("0.005")), "discount %s", got.DiscountAmount)
}

func TestRepositories_RefuseCorruptStoredValues(t *testing.T) {
	ctx := context.Background()

	t.Run("estimation total", func(t *testing.T) {
		ddb := newFakeDynamo()
		repo := NewEstimationDynamoRepository(ddb)
		_, err := repo.Create(ctx, sampleEstimation())
		require.NoError(t, err)
		ddb.items["id-1"]["total_amount"] = &types.AttributeValueMemberS{Value: "12,50"}

		_, err = repo.GetByUUID(ctx, "est-1")
		require.ErrorIs(t, err, ErrCorruptRecord)
		assert.Contains(t, err.Error(), "total_amount")

		_, err = repo.ListByOrderRef(ctx, "os-1")
		require.ErrorIs(t, err, ErrCorruptRecord)
	})

	t.Run("invoice line item", func(t *testing.T) {
		ddb := newFakeDynamo()
		repo := NewInvoiceDynamoRepository(ddb)
		_, err := repo.Create(ctx, entities.Invoice{
			ID: "i-1", UUID: "u-1", OrderRef: "os-1", Status: entities.InvoiceStatusSent,
			LineItems: []entities.LineItem{{Name: "Pads", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10)}},
		})
		require.NoError(t, err)
		items := ddb.items["i-1"]["line_items"].(*types.AttributeValueMemberL)
		items.Value[0].(*types.AttributeValueMemberM).Value["amount"] = &types.AttributeValueMemberS{Value: "ten"}

		_, err = repo.GetByID(ctx, "i-1")
		require.ErrorIs(t, err, ErrCorruptRecord)
		assert.Contains(t, err.Error(), "line_items[0].amount")
	})

	t.Run("payment date", func(t *testing.T) {
		ddb := newFakeDynamo()
		repo := NewPaymentDynamoRepository(ddb)
		_, err := repo.Create(ctx, entities.Payment{
			ID: "p-1", InvoiceID: "inv-1", Amount: decimal.NewFromInt(10),
			Date: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC), Status: entities.PaymentStatusApproved,
		})
		require.NoError(t, err)
		ddb.items["p-1"]["date"] = &types.AttributeValueMemberS{Value: "yesterday"}

		_, err = repo.ListByInvoiceID(ctx, "inv-1")
		require.ErrorIs(t, err, ErrCorruptRecord)
	})
}
