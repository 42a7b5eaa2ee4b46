// Package order builds the byte sequences sellers and mint signers sign off-chain.
//
// Messages are tightly packed (20-byte addresses, 32-byte big-endian integers),
// hashed with keccak256 and then wrapped in the "\x19Ethereum Signed Message:\n32"
// envelope so that standard wallets produce compatible signatures.
package order

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const signedMessagePrefix = "\x19Ethereum Signed Message:\n32"

// Order is the descriptor a seller signs to offer OfferedAmount units of
// (Asset, UnitId) at PricePerUnit each. Nonce pins the authorization to the
// counter value live at signing time.
type Order struct {
	Asset         common.Address
	UnitId        common.Hash
	PricePerUnit  *big.Int
	OfferedAmount uint64
	Nonce         uint64
}

func (o Order) Validate() error {
	if o.PricePerUnit == nil || o.PricePerUnit.Sign() < 0 {
		return fmt.Errorf("missing or negative price per unit")
	}
	if o.PricePerUnit.BitLen() > 256 {
		return fmt.Errorf("price per unit overflows 256 bits")
	}
	if o.OfferedAmount == 0 {
		return fmt.Errorf("offered amount must be greater than 0")
	}
	return nil
}

// Digest returns keccak256(asset || unitId || price || offeredAmount || nonce).
func (o Order) Digest() common.Hash {
	price := o.PricePerUnit
	if price == nil {
		price = new(big.Int)
	}
	return crypto.Keccak256Hash(
		o.Asset.Bytes(),
		o.UnitId.Bytes(),
		common.BigToHash(price).Bytes(),
		uint256(o.OfferedAmount),
		uint256(o.Nonce),
	)
}

// SigningHash returns the prefixed digest that is actually signed.
func (o Order) SigningHash() common.Hash {
	return SignedMessageHash(o.Digest())
}

// MintAuthorization is the message the mint signer approves before a new unit
// class can be created.
type MintAuthorization struct {
	Asset  common.Address
	UnitId common.Hash
}

func (m MintAuthorization) Digest() common.Hash {
	return crypto.Keccak256Hash(m.Asset.Bytes(), m.UnitId.Bytes())
}

func (m MintAuthorization) SigningHash() common.Hash {
	return SignedMessageHash(m.Digest())
}

// SignedMessageHash wraps a 32-byte digest into the signed message envelope.
func SignedMessageHash(digest common.Hash) common.Hash {
	return crypto.Keccak256Hash([]byte(signedMessagePrefix), digest.Bytes())
}

// ParseUnitID accepts either a 0x-prefixed hex string of up to 32 bytes or a
// base 10 integer.
func ParseUnitID(s string) (common.Hash, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return common.Hash{}, fmt.Errorf("missing unit id")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, ok := new(big.Int).SetString(s[2:], 16)
		if !ok || n.Sign() < 0 || len(s) > 66 {
			return common.Hash{}, fmt.Errorf("invalid hex unit id %s", s)
		}
		return common.BigToHash(n), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 || n.BitLen() > 256 {
		return common.Hash{}, fmt.Errorf("invalid unit id %s", s)
	}
	return common.BigToHash(n), nil
}

// ParseAddress parses a 0x-prefixed hex address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %s", s)
	}
	return common.HexToAddress(s), nil
}

func uint256(v uint64) []byte {
	return common.BigToHash(new(big.Int).SetUint64(v)).Bytes()
}
