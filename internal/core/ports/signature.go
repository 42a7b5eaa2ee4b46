package ports

import "github.com/ethereum/go-ethereum/common"

type SignatureVerifier interface {
	// Recover returns the address that produced sig over hash.
	Recover(hash common.Hash, sig []byte) (common.Address, error)
}
