package repository

import (
	"context"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
)

const defaultEstimationsTableName = "estimations"

type estimationItem struct {
	ID                    string         `dynamodbav:"id"`
	UUID                  string         `dynamodbav:"uuid"`
	OrderRef              string         `dynamodbav:"order_ref"`
	Title                 string         `dynamodbav:"title"`
	Description           string         `dynamodbav:"description,omitempty"`
	CostBreakdown         []lineItemItem `dynamodbav:"cost_breakdown"`
	totalsItem
	EstimatedTimelineDays int    `dynamodbav:"estimated_timeline_days"`
	ValidUntil            string `dynamodbav:"valid_until,omitempty"`
	Status                string `dynamodbav:"status"`
	PDFURL                string `dynamodbav:"pdf_url,omitempty"`
	PDFPublicID           string `dynamodbav:"pdf_public_id,omitempty"`
	clientItem
	CreatedBy  string `dynamodbav:"created_by"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
	SentAt     string `dynamodbav:"sent_at,omitempty"`
	ApprovedAt string `dynamodbav:"approved_at,omitempty"`
	RejectedAt string `dynamodbav:"rejected_at,omitempty"`
	voidItem
	Version int64 `dynamodbav:"version"`
}

// EstimationDynamoRepository persists Estimation entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI uuid-index: uuid (string), projection ALL
//   - GSI order_ref-index: order_ref (string), projection ALL
//
// Writes after creation are full-item puts conditioned on the stored version.
type EstimationDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IEstimationRepository = (*EstimationDynamoRepository)(nil)

func NewEstimationDynamoRepository(ddb DynamoAPI) *EstimationDynamoRepository {
	return &EstimationDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ESTIMATIONS_TABLE", defaultEstimationsTableName),
	}
}

func (r *EstimationDynamoRepository) Create(ctx context.Context, e entities.Estimation) (entities.Estimation, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toEstimationItem(e)); err != nil {
		return entities.Estimation{}, err
	}
	return e, nil
}

func (r *EstimationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimation, error) {
	var it estimationItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Estimation{}, err
	}
	return fromEstimationItem(it)
}

func (r *EstimationDynamoRepository) GetByUUID(ctx context.Context, uuid string) (entities.Estimation, error) {
	id, err := idByUUID(ctx, r.ddb, r.tableName, uuid)
	if err != nil || id == "" {
		return entities.Estimation{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *EstimationDynamoRepository) ListByOrderRef(ctx context.Context, orderRef string) ([]entities.Estimation, error) {
	raw, err := queryIndex(ctx, r.ddb, r.tableName, indexOrderRef, "order_ref", orderRef, 0)
	if err != nil {
		return nil, err
	}
	var items []estimationItem
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, err
	}
	out := make([]entities.Estimation, 0, len(items))
	for _, it := range items {
		e, err := fromEstimationItem(it)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *EstimationDynamoRepository) Update(ctx context.Context, e entities.Estimation, expectedVersion int64) (entities.Estimation, error) {
	if err := putVersioned(ctx, r.ddb, r.tableName, toEstimationItem(e), expectedVersion); err != nil {
		return entities.Estimation{}, err
	}
	return e, nil
}

func (r *EstimationDynamoRepository) Delete(ctx context.Context, id string, expectedVersion int64) error {
	return deleteVersioned(ctx, r.ddb, r.tableName, id, expectedVersion)
}

func toEstimationItem(e entities.Estimation) estimationItem {
	return estimationItem{
		ID:                    e.ID,
		UUID:                  e.UUID,
		OrderRef:              e.OrderRef,
		Title:                 e.Title,
		Description:           e.Description,
		CostBreakdown:         toLineItemItems(e.CostBreakdown),
		totalsItem:            toTotalsItem(e.Totals),
		EstimatedTimelineDays: e.EstimatedTimelineDays,
		ValidUntil:            formatOptionalTime(e.ValidUntil),
		Status:                string(e.Status),
		PDFURL:                e.PDFURL,
		PDFPublicID:           e.PDFPublicID,
		clientItem:            toClientItem(e.Client),
		CreatedBy:             e.CreatedBy,
		CreatedAt:             formatTime(e.CreatedAt),
		UpdatedAt:             formatTime(e.UpdatedAt),
		SentAt:                formatOptionalTime(e.SentAt),
		ApprovedAt:            formatOptionalTime(e.ApprovedAt),
		RejectedAt:            formatOptionalTime(e.RejectedAt),
		voidItem:              toVoidItem(e.VoidInfo),
		Version:               e.Version,
	}
}

func fromEstimationItem(it estimationItem) (entities.Estimation, error) {
	d := newItemDecoder("estimation", it.ID)
	e := entities.Estimation{
		ID:                    it.ID,
		UUID:                  it.UUID,
		OrderRef:              it.OrderRef,
		Title:                 it.Title,
		Description:           it.Description,
		CostBreakdown:         d.lineItems("cost_breakdown", it.CostBreakdown),
		Totals:                d.totals(it.totalsItem),
		EstimatedTimelineDays: it.EstimatedTimelineDays,
		ValidUntil:            d.optionalTime("valid_until", it.ValidUntil),
		Status:                entities.EstimationStatus(it.Status),
		PDFURL:                it.PDFURL,
		PDFPublicID:           it.PDFPublicID,
		Client:                fromClientItem(it.clientItem),
		CreatedBy:             it.CreatedBy,
		CreatedAt:             d.time("created_at", it.CreatedAt),
		UpdatedAt:             d.time("updated_at", it.UpdatedAt),
		SentAt:                d.optionalTime("sent_at", it.SentAt),
		ApprovedAt:            d.optionalTime("approved_at", it.ApprovedAt),
		RejectedAt:            d.optionalTime("rejected_at", it.RejectedAt),
		VoidInfo:              d.void(it.voidItem),
		Version:               it.Version,
	}
	if d.err != nil {
		return entities.Estimation{}, d.err
	}
	return e, nil
}
