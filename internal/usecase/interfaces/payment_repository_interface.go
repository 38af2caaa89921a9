package interfaces

import (
	"context"

	"adyen_classic/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for PaymentRecord.
//
// GetByID returns a zero record (empty ID) when nothing is stored under id.

type IPaymentRepository interface {
	Create(ctx context.Context, r entities.PaymentRecord) (entities.PaymentRecord, error)
	GetByID(ctx context.Context, id string) (entities.PaymentRecord, error)
	ListByReference(ctx context.Context, reference string) ([]entities.PaymentRecord, error)
}
