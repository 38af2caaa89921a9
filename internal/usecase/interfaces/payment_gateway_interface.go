package interfaces

import (
	"context"

	"adyen_classic/internal/domain/entities"
	"adyen_classic/internal/infrastructure/payments/adyen"
)

// IPaymentGateway abstracts the card/boleto processor.
//
// Processor refusals come back as an Outcome with Successful false. Errors are
// reserved for validation, unsupported methods or operations and transport
// failures.
type IPaymentGateway interface {
	Authorize(ctx context.Context, p adyen.AuthorizeParams) (*entities.Outcome, error)
	Capture(ctx context.Context, p adyen.CaptureParams) (*entities.Outcome, error)
	Unsupported(op adyen.Operation) error
}
