package domain

import (
	"math/big"
	"time"

	"github.com/arkade-os/offerd/pkg/salefee"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

type PayoutKind string

const (
	PayoutKindMarketplace PayoutKind = "marketplace"
	PayoutKindRoyalty     PayoutKind = "royalty"
	PayoutKindSeller      PayoutKind = "seller"
)

// Payout is a single native currency transfer of a settlement.
type Payout struct {
	Kind      PayoutKind
	Recipient common.Address
	Amount    *big.Int
}

// NewDistributionPlan orders the payouts of a sale: marketplace fee recipient
// first, then royalty recipients in declared order, then the seller.
// The amounts sum to the gross payment of the breakdown.
func NewDistributionPlan(
	breakdown *salefee.Breakdown, feeRecipient common.Address,
	royalties []RoyaltyFee, seller common.Address,
) []Payout {
	plan := make([]Payout, 0, len(royalties)+2)
	plan = append(plan, Payout{
		Kind:      PayoutKindMarketplace,
		Recipient: feeRecipient,
		Amount:    breakdown.MarketplaceTake,
	})
	for i, royalty := range royalties {
		plan = append(plan, Payout{
			Kind:      PayoutKindRoyalty,
			Recipient: royalty.Recipient,
			Amount:    breakdown.Royalties[i],
		})
	}
	return append(plan, Payout{
		Kind:      PayoutKindSeller,
		Recipient: seller,
		Amount:    breakdown.FinalSellerAmount,
	})
}

// Settlement is the record of a completed buy.
type Settlement struct {
	Id            string
	Asset         common.Address
	UnitId        common.Hash
	Seller        common.Address
	Buyer         common.Address
	Amount        uint64
	OfferedAmount uint64
	FilledAmount  uint64
	PricePerUnit  *big.Int
	GrossPayment  *big.Int
	Nonce         uint64
	NonceAdvanced bool
	Payouts       []Payout
	CreatedAt     time.Time
}

func NewSettlement(
	fill FillKey, buyer common.Address, amount, offeredAmount, filledAmount uint64,
	pricePerUnit, grossPayment *big.Int, payouts []Payout,
) *Settlement {
	return &Settlement{
		Id:            uuid.New().String(),
		Asset:         fill.Asset,
		UnitId:        fill.UnitId,
		Seller:        fill.Owner,
		Buyer:         buyer,
		Amount:        amount,
		OfferedAmount: offeredAmount,
		FilledAmount:  filledAmount,
		PricePerUnit:  pricePerUnit,
		GrossPayment:  grossPayment,
		Nonce:         fill.Nonce,
		NonceAdvanced: filledAmount == offeredAmount,
		Payouts:       payouts,
		CreatedAt:     time.Now(),
	}
}

func (s Settlement) TotalPaid() *big.Int {
	total := new(big.Int)
	for _, p := range s.Payouts {
		total.Add(total, p.Amount)
	}
	return total
}
