package domain

import "context"

type NonceRepository interface {
	// GetNonce returns 0 for a never seen key.
	GetNonce(ctx context.Context, key NonceKey) (uint64, error)
	// IncrementNonce bumps the counter by one and returns the new value.
	IncrementNonce(ctx context.Context, key NonceKey) (uint64, error)
}

type FillRepository interface {
	GetFilled(ctx context.Context, key FillKey) (uint64, error)
	// AddFilled adds amount to the running total and returns the new total.
	AddFilled(ctx context.Context, key FillKey, amount uint64) (uint64, error)
}
