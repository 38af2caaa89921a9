package interfaces

import (
	"context"
	"time"
)

// IPaymentLocker serializes work on a single payment across instances.
type IPaymentLocker interface {
	Acquire(ctx context.Context, id string, ttl time.Duration) (release func(context.Context) error, err error)
}
