package interfaces

import (
	"context"
	"findoc_service/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for invoice payments.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.Payment, error)
}
