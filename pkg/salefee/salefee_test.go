package salefee_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/arkade-os/offerd/pkg/salefee"
	"github.com/stretchr/testify/require"
)

func bigInt(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return n
}

func TestCompute(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		fixtures := []struct {
			name              string
			gross             string
			buyerBps          uint32
			sellerBps         uint32
			royaltyBps        []uint32
			basePrice         string
			buyerFee          string
			sellerFee         string
			netToSeller       string
			royalties         []string
			finalSellerAmount string
		}{
			{
				name:              "default rates with two royalties",
				gross:             "10000000000000000",
				buyerBps:          250,
				sellerBps:         250,
				royaltyBps:        []uint32{10, 10},
				basePrice:         "9756097560975609",
				buyerFee:          "243902439024391",
				sellerFee:         "243902439024390",
				netToSeller:       "9512195121951219",
				royalties:         []string{"9512195121951", "9512195121951"},
				finalSellerAmount: "9493170731707317",
			},
			{
				name:              "no fees",
				gross:             "1000",
				basePrice:         "1000",
				buyerFee:          "0",
				sellerFee:         "0",
				netToSeller:       "1000",
				royalties:         []string{},
				finalSellerAmount: "1000",
			},
			{
				name:              "remainder lands on seller",
				gross:             "999",
				buyerBps:          100,
				sellerBps:         300,
				royaltyBps:        []uint32{333},
				basePrice:         "989",
				buyerFee:          "10",
				sellerFee:         "29",
				netToSeller:       "960",
				royalties:         []string{"31"},
				finalSellerAmount: "929",
			},
			{
				name:              "zero gross",
				gross:             "0",
				buyerBps:          250,
				sellerBps:         250,
				royaltyBps:        []uint32{500},
				basePrice:         "0",
				buyerFee:          "0",
				sellerFee:         "0",
				netToSeller:       "0",
				royalties:         []string{"0"},
				finalSellerAmount: "0",
			},
		}

		for _, f := range fixtures {
			t.Run(f.name, func(t *testing.T) {
				gross := bigInt(t, f.gross)
				breakdown, err := salefee.Compute(gross, f.buyerBps, f.sellerBps, f.royaltyBps)
				require.NoError(t, err)
				require.NotNil(t, breakdown)

				require.Equal(t, f.basePrice, breakdown.BasePrice.String())
				require.Equal(t, f.buyerFee, breakdown.BuyerFee.String())
				require.Equal(t, f.sellerFee, breakdown.SellerFee.String())
				require.Equal(t, f.netToSeller, breakdown.NetToSeller.String())
				require.Len(t, breakdown.Royalties, len(f.royalties))
				for i, royalty := range f.royalties {
					require.Equal(t, royalty, breakdown.Royalties[i].String())
				}
				require.Equal(t, f.finalSellerAmount, breakdown.FinalSellerAmount.String())

				take := new(big.Int).Add(breakdown.BuyerFee, breakdown.SellerFee)
				require.Zero(t, take.Cmp(breakdown.MarketplaceTake))
				require.Zero(t, gross.Cmp(breakdown.Total()))
			})
		}
	})

	t.Run("invalid", func(t *testing.T) {
		fixtures := []struct {
			name       string
			gross      *big.Int
			buyerBps   uint32
			sellerBps  uint32
			royaltyBps []uint32
		}{
			{"nil gross", nil, 0, 0, nil},
			{"negative gross", big.NewInt(-1), 0, 0, nil},
			{"buyer bps too high", big.NewInt(1), 10000, 0, nil},
			{"seller bps too high", big.NewInt(1), 0, 10001, nil},
			{"royalty bps too high", big.NewInt(1), 0, 0, []uint32{10000}},
			{"royalties sum too high", big.NewInt(1), 0, 0, []uint32{5000, 5000}},
		}

		for _, f := range fixtures {
			t.Run(f.name, func(t *testing.T) {
				breakdown, err := salefee.Compute(f.gross, f.buyerBps, f.sellerBps, f.royaltyBps)
				require.Error(t, err)
				require.Nil(t, breakdown)
			})
		}
	})

	t.Run("does not alias input", func(t *testing.T) {
		gross := big.NewInt(1_000_000)
		breakdown, err := salefee.Compute(gross, 250, 250, nil)
		require.NoError(t, err)

		gross.SetInt64(1)
		require.Equal(t, "1000000", breakdown.GrossPayment.String())
	})
}

func TestComputeConservation(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	maxGross := new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)

	for i := 0; i < 2000; i++ {
		gross := new(big.Int).Rand(rnd, maxGross)
		buyerBps := uint32(rnd.Intn(salefee.BpsDenominator))
		sellerBps := uint32(rnd.Intn(salefee.BpsDenominator))

		royaltyBps := make([]uint32, rnd.Intn(5))
		for j := range royaltyBps {
			royaltyBps[j] = uint32(rnd.Intn(2000))
		}

		breakdown, err := salefee.Compute(gross, buyerBps, sellerBps, royaltyBps)
		require.NoError(t, err)
		require.Zero(t, gross.Cmp(breakdown.Total()), "gross %s", gross)
		require.GreaterOrEqual(t, breakdown.FinalSellerAmount.Sign(), 0)
		require.LessOrEqual(t, breakdown.BasePrice.Cmp(gross), 0)
	}
}
