package order

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the size of an r || s || v signature.
const SignatureLength = 65

// Sign signs hash with key and returns a 65-byte r || s || v signature with
// v in {27, 28}.
func Sign(key *btcec.PrivateKey, hash common.Hash) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("missing private key")
	}
	// SignCompact returns header || r || s with header = 27 + recovery id
	// for uncompressed keys.
	compact := ecdsa.SignCompact(key, hash.Bytes(), false)
	sig := make([]byte, SignatureLength)
	copy(sig, compact[1:])
	sig[64] = compact[0]
	return sig, nil
}

// AddressFromPubKey derives the 20-byte account address of a public key:
// the last 20 bytes of keccak256(x || y).
func AddressFromPubKey(pubkey *btcec.PublicKey) common.Address {
	uncompressed := pubkey.SerializeUncompressed()
	return common.BytesToAddress(crypto.Keccak256(uncompressed[1:])[12:])
}

// ParsePrivateKey parses a hex encoded 32-byte secp256k1 private key.
func ParsePrivateKey(hexKey string) (*btcec.PrivateKey, error) {
	buf, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key format: %s", err)
	}
	if len(buf) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("invalid private key length %d", len(buf))
	}
	key, _ := btcec.PrivKeyFromBytes(buf)
	return key, nil
}
