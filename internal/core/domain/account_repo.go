package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

type AccountRepository interface {
	// Get returns an empty account for a never seen address.
	Get(ctx context.Context, addr common.Address) (*Account, error)
	Upsert(ctx context.Context, account Account) error
}
