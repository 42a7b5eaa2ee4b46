package signer

import (
	"fmt"

	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const signatureLength = crypto.SignatureLength

type verifier struct{}

// NewVerifier returns an ecrecover based verifier for 65-byte r || s || v
// signatures, v being either {0, 1} or {27, 28}.
func NewVerifier() ports.SignatureVerifier {
	return verifier{}
}

func (verifier) Recover(hash common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != signatureLength {
		return common.Address{}, fmt.Errorf(
			"invalid signature length %d, expected %d", len(sig), signatureLength,
		)
	}

	normalized := make([]byte, signatureLength)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	if normalized[64] > 1 {
		return common.Address{}, fmt.Errorf("invalid signature recovery id %d", sig[64])
	}

	pubkey, err := crypto.SigToPub(hash.Bytes(), normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pubkey), nil
}
