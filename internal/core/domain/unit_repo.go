package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

type UnitRepository interface {
	// GetUnitClass returns nil if the unit class does not exist.
	GetUnitClass(ctx context.Context, asset common.Address, unitId common.Hash) (*UnitClass, error)
	AddUnitClass(ctx context.Context, unit UnitClass) error
	GetBalance(
		ctx context.Context, asset common.Address, unitId common.Hash, owner common.Address,
	) (uint64, error)
	SetBalance(ctx context.Context, holding Holding) error
	IsApprovedForAll(
		ctx context.Context, asset common.Address, owner, operator common.Address,
	) (bool, error)
	SetApprovalForAll(
		ctx context.Context, asset common.Address, owner, operator common.Address, approved bool,
	) error
}
