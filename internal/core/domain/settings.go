package domain

import (
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Settings holds the fee rate directory state and the nonce registry operator.
type Settings struct {
	BuyerFeeBps   uint32
	SellerFeeBps  uint32
	FeeRecipient  common.Address
	Proxies       []common.Address
	NonceOperator common.Address
	UpdatedAt     time.Time
}

func NewSettings(buyerFeeBps, sellerFeeBps uint32, feeRecipient common.Address) *Settings {
	return &Settings{
		BuyerFeeBps:  buyerFeeBps,
		SellerFeeBps: sellerFeeBps,
		FeeRecipient: feeRecipient,
		UpdatedAt:    time.Now(),
	}
}

func (s *Settings) IsProxy(addr common.Address) bool {
	return slices.Contains(s.Proxies, addr)
}

// AddProxy returns false if addr is already registered.
func (s *Settings) AddProxy(addr common.Address) bool {
	if s.IsProxy(addr) {
		return false
	}
	s.Proxies = append(s.Proxies, addr)
	return true
}

// RemoveProxy returns false if addr is not registered.
func (s *Settings) RemoveProxy(addr common.Address) bool {
	i := slices.Index(s.Proxies, addr)
	if i < 0 {
		return false
	}
	s.Proxies = slices.Delete(s.Proxies, i, i+1)
	return true
}
