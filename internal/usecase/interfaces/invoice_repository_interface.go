package interfaces

import (
	"context"
	"findoc_service/internal/domain/entities"
)

// IInvoiceRepository abstracts DynamoDB persistence for Invoice.
//
// Same conventions as IEstimationRepository.

type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByUUID(ctx context.Context, uuid string) (entities.Invoice, error)
	ListByOrderRef(ctx context.Context, orderRef string) ([]entities.Invoice, error)
	ListByEstimationRef(ctx context.Context, estimationRef string) ([]entities.Invoice, error)
	Update(ctx context.Context, inv entities.Invoice, expectedVersion int64) (entities.Invoice, error)
	Delete(ctx context.Context, id string, expectedVersion int64) error
}

// IInvoiceNumberSequence hands out gapless human-facing invoice numbers.
type IInvoiceNumberSequence interface {
	Next(ctx context.Context, scope string) (int64, error)
}
