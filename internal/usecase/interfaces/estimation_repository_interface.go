package interfaces

import (
	"context"
	"findoc_service/internal/domain/entities"
)

// IEstimationRepository abstracts DynamoDB persistence for Estimation.
//
// Lookups return a zero-value Estimation (empty ID) when nothing matches.
// Update and Delete are compare-and-set on Version and fail with entities.ErrVersionConflict
// when another writer got there first.

type IEstimationRepository interface {
	Create(ctx context.Context, e entities.Estimation) (entities.Estimation, error)
	GetByID(ctx context.Context, id string) (entities.Estimation, error)
	GetByUUID(ctx context.Context, uuid string) (entities.Estimation, error)
	ListByOrderRef(ctx context.Context, orderRef string) ([]entities.Estimation, error)
	Update(ctx context.Context, e entities.Estimation, expectedVersion int64) (entities.Estimation, error)
	Delete(ctx context.Context, id string, expectedVersion int64) error
}
