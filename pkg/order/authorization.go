package order

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// BuyAuthorization is what a buyer signs to let the exchange debit
// GrossPayment for BuyingAmount units of a signed order.
//
// Order is the signing hash of the seller's order, so the authorization
// dies with the order nonce. Filled is the amount already filled under that
// nonce when the buyer signed: every fill moves it forward, hence an
// authorization settles at most once.
type BuyAuthorization struct {
	Order        common.Hash
	Filled       uint64
	BuyingAmount uint64
	GrossPayment *big.Int
	Buyer        common.Address
}

// Digest returns keccak256(order || filled || buyingAmount || grossPayment || buyer).
func (b BuyAuthorization) Digest() common.Hash {
	gross := b.GrossPayment
	if gross == nil {
		gross = new(big.Int)
	}
	return crypto.Keccak256Hash(
		b.Order.Bytes(),
		uint256(b.Filled),
		uint256(b.BuyingAmount),
		common.BigToHash(gross).Bytes(),
		b.Buyer.Bytes(),
	)
}

func (b BuyAuthorization) SigningHash() common.Hash {
	return SignedMessageHash(b.Digest())
}

// ApprovalAuthorization is what an owner signs to (un)set Operator as
// transfer operator of all its units of Asset. Nonce is the approval nonce
// of the owner, bumped on every accepted approval.
type ApprovalAuthorization struct {
	Asset    common.Address
	Owner    common.Address
	Operator common.Address
	Approved bool
	Nonce    uint64
}

// Digest returns keccak256(asset || owner || operator || approved || nonce),
// approved being a single 0x00/0x01 byte.
func (a ApprovalAuthorization) Digest() common.Hash {
	approved := []byte{0}
	if a.Approved {
		approved[0] = 1
	}
	return crypto.Keccak256Hash(
		a.Asset.Bytes(),
		a.Owner.Bytes(),
		a.Operator.Bytes(),
		approved,
		uint256(a.Nonce),
	)
}

func (a ApprovalAuthorization) SigningHash() common.Hash {
	return SignedMessageHash(a.Digest())
}
