package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// NonceKey identifies the replay counter of an owner for a unit class.
type NonceKey struct {
	Asset  common.Address
	UnitId common.Hash
	Owner  common.Address
}

func (k NonceKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Asset.Hex(), k.UnitId.Hex(), k.Owner.Hex())
}

// FillKey identifies the running total of units sold under a specific nonce.
// Once the nonce advances the key changes, so the fill state resets.
type FillKey struct {
	NonceKey
	Nonce uint64
}

func (k FillKey) String() string {
	return fmt.Sprintf("%s:%d", k.NonceKey.String(), k.Nonce)
}
