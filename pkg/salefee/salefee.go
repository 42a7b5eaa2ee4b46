package salefee

import (
	"fmt"
	"math/big"
)

// BpsDenominator is the basis points denominator: 1 bps = 0.01%.
const BpsDenominator = 10000

var bpsDenominator = big.NewInt(BpsDenominator)

// Breakdown is the split of a gross payment between marketplace, royalty
// recipients and seller. All amounts are floor-rounded, the remainder lands on
// FinalSellerAmount.
type Breakdown struct {
	GrossPayment      *big.Int
	BasePrice         *big.Int
	BuyerFee          *big.Int
	SellerFee         *big.Int
	NetToSeller       *big.Int
	Royalties         []*big.Int
	RoyaltySum        *big.Int
	FinalSellerAmount *big.Int
	MarketplaceTake   *big.Int
}

// Total returns marketplace take + royalties + seller amount, which always
// equals the gross payment.
func (b *Breakdown) Total() *big.Int {
	total := new(big.Int).Add(b.MarketplaceTake, b.RoyaltySum)
	return total.Add(total, b.FinalSellerAmount)
}

// ValidateBps checks a single basis points rate is in [0, 10000).
func ValidateBps(bps uint32) error {
	if bps >= BpsDenominator {
		return fmt.Errorf("bps %d out of range [0, %d)", bps, BpsDenominator)
	}
	return nil
}

// ValidateRoyalties checks that every royalty rate is valid and that together
// they do not consume the whole seller proceeds.
func ValidateRoyalties(royaltyBps []uint32) error {
	sum := uint64(0)
	for i, bps := range royaltyBps {
		if err := ValidateBps(bps); err != nil {
			return fmt.Errorf("royalty %d: %w", i, err)
		}
		sum += uint64(bps)
	}
	if sum >= BpsDenominator {
		return fmt.Errorf("royalties sum to %d bps, must be below %d", sum, BpsDenominator)
	}
	return nil
}

// Compute splits grossPayment:
//
//	basePrice   = gross * 10000 / (10000 + buyerBps)
//	buyerFee    = gross - basePrice
//	sellerFee   = basePrice * sellerBps / 10000
//	netToSeller = basePrice - sellerFee
//	royalty_i   = netToSeller * royaltyBps_i / 10000
//	final       = netToSeller - sum(royalty_i)
//	take        = buyerFee + sellerFee
func Compute(
	grossPayment *big.Int, buyerBps, sellerBps uint32, royaltyBps []uint32,
) (*Breakdown, error) {
	if grossPayment == nil || grossPayment.Sign() < 0 {
		return nil, fmt.Errorf("gross payment must be a non-negative amount")
	}
	if err := ValidateBps(buyerBps); err != nil {
		return nil, fmt.Errorf("buyer fee: %w", err)
	}
	if err := ValidateBps(sellerBps); err != nil {
		return nil, fmt.Errorf("seller fee: %w", err)
	}
	if err := ValidateRoyalties(royaltyBps); err != nil {
		return nil, err
	}

	gross := new(big.Int).Set(grossPayment)

	basePrice := new(big.Int).Mul(gross, bpsDenominator)
	basePrice.Quo(basePrice, big.NewInt(int64(BpsDenominator)+int64(buyerBps)))

	buyerFee := new(big.Int).Sub(gross, basePrice)

	sellerFee := new(big.Int).Mul(basePrice, big.NewInt(int64(sellerBps)))
	sellerFee.Quo(sellerFee, bpsDenominator)

	netToSeller := new(big.Int).Sub(basePrice, sellerFee)

	royalties := make([]*big.Int, 0, len(royaltyBps))
	royaltySum := new(big.Int)
	for _, bps := range royaltyBps {
		royalty := new(big.Int).Mul(netToSeller, big.NewInt(int64(bps)))
		royalty.Quo(royalty, bpsDenominator)
		royalties = append(royalties, royalty)
		royaltySum.Add(royaltySum, royalty)
	}

	return &Breakdown{
		GrossPayment:      gross,
		BasePrice:         basePrice,
		BuyerFee:          buyerFee,
		SellerFee:         sellerFee,
		NetToSeller:       netToSeller,
		Royalties:         royalties,
		RoyaltySum:        royaltySum,
		FinalSellerAmount: new(big.Int).Sub(netToSeller, royaltySum),
		MarketplaceTake:   new(big.Int).Add(buyerFee, sellerFee),
	}, nil
}
