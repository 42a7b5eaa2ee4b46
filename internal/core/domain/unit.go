package domain

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrNotOwnerOrApproved = errors.New("caller is not owner nor approved")
	ErrInsufficientUnits  = errors.New("insufficient balance for transfer")
)

// RoyaltyFee is a share of the seller proceeds, in basis points, owed to a
// recipient on every sale of a unit class.
type RoyaltyFee struct {
	Recipient common.Address
	Bps       uint32
}

// UnitClass is a fungible class of units within an asset collection.
type UnitClass struct {
	Asset     common.Address
	UnitId    common.Hash
	Creator   common.Address
	Supply    uint64
	Uri       string
	Royalties []RoyaltyFee
	CreatedAt time.Time
}

func (u UnitClass) RoyaltyBps() []uint32 {
	bps := make([]uint32, 0, len(u.Royalties))
	for _, r := range u.Royalties {
		bps = append(bps, r.Bps)
	}
	return bps
}

// Holding is the unit balance of an owner.
type Holding struct {
	Asset  common.Address
	UnitId common.Hash
	Owner  common.Address
	Amount uint64
}
