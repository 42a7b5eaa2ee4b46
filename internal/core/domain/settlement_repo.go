package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

type SettlementRepository interface {
	Add(ctx context.Context, settlement Settlement) error
	// Get returns nil if the settlement does not exist.
	Get(ctx context.Context, id string) (*Settlement, error)
	// List returns the settlements of a unit class, oldest first.
	List(ctx context.Context, asset common.Address, unitId common.Hash) ([]Settlement, error)
}
