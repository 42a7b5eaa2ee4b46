package domain_test

import (
	"math/big"
	"testing"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/arkade-os/offerd/pkg/salefee"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	seller       = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	buyer        = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	feeRecipient = common.HexToAddress("0x9965507D1a55bcC2695C58ba16FB37d819B0A4dc")
	royaltyA     = common.HexToAddress("0x90F79bf6EB2c4f870365E785982E1f101E93b906")
	royaltyB     = common.HexToAddress("0x15d34AAf54267DB7D7c367839AAf71A00a2C6A65")
)

func TestSettingsProxies(t *testing.T) {
	settings := domain.NewSettings(250, 250, feeRecipient)
	require.False(t, settings.IsProxy(buyer))

	require.True(t, settings.AddProxy(buyer))
	require.False(t, settings.AddProxy(buyer))
	require.True(t, settings.IsProxy(buyer))
	require.Len(t, settings.Proxies, 1)

	require.False(t, settings.RemoveProxy(seller))
	require.True(t, settings.RemoveProxy(buyer))
	require.False(t, settings.IsProxy(buyer))
	require.Empty(t, settings.Proxies)
}

func TestAccount(t *testing.T) {
	t.Run("credit and debit", func(t *testing.T) {
		account := domain.NewAccount(buyer)
		require.NoError(t, account.Credit(big.NewInt(100)))
		require.NoError(t, account.Debit(big.NewInt(40)))
		require.Equal(t, "60", account.Balance.String())

		err := account.Debit(big.NewInt(61))
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
		require.Equal(t, "60", account.Balance.String())

		require.ErrorIs(t, account.Credit(big.NewInt(-1)), domain.ErrInvalidAmount)
		require.ErrorIs(t, account.Debit(nil), domain.ErrInvalidAmount)
	})

	t.Run("rejects payments", func(t *testing.T) {
		account := &domain.Account{Address: royaltyA, RejectsPayments: true}
		require.ErrorIs(t, account.Credit(big.NewInt(1)), domain.ErrPaymentRejected)
		require.ErrorIs(t, account.Credit(big.NewInt(0)), domain.ErrPaymentRejected)
	})

	t.Run("nil balance", func(t *testing.T) {
		account := &domain.Account{Address: seller}
		require.ErrorIs(t, account.Debit(big.NewInt(1)), domain.ErrInsufficientFunds)
		require.NoError(t, account.Credit(big.NewInt(1)))
		require.Equal(t, "1", account.Balance.String())
	})
}

func TestDistributionPlan(t *testing.T) {
	royalties := []domain.RoyaltyFee{
		{Recipient: royaltyA, Bps: 10},
		{Recipient: royaltyB, Bps: 10},
	}
	unit := domain.UnitClass{Royalties: royalties}

	gross, _ := new(big.Int).SetString("10000000000000000", 10)
	breakdown, err := salefee.Compute(gross, 250, 250, unit.RoyaltyBps())
	require.NoError(t, err)

	plan := domain.NewDistributionPlan(breakdown, feeRecipient, royalties, seller)
	require.Len(t, plan, 4)

	require.Equal(t, domain.PayoutKindMarketplace, plan[0].Kind)
	require.Equal(t, feeRecipient, plan[0].Recipient)
	require.Equal(t, "487804878048781", plan[0].Amount.String())

	require.Equal(t, domain.PayoutKindRoyalty, plan[1].Kind)
	require.Equal(t, royaltyA, plan[1].Recipient)
	require.Equal(t, domain.PayoutKindRoyalty, plan[2].Kind)
	require.Equal(t, royaltyB, plan[2].Recipient)

	require.Equal(t, domain.PayoutKindSeller, plan[3].Kind)
	require.Equal(t, seller, plan[3].Recipient)
	require.Equal(t, "9493170731707317", plan[3].Amount.String())

	fill := domain.FillKey{
		NonceKey: domain.NonceKey{Owner: seller},
		Nonce:    3,
	}
	settlement := domain.NewSettlement(fill, buyer, 50, 100, 100, big.NewInt(1), gross, plan)
	require.NotEmpty(t, settlement.Id)
	require.True(t, settlement.NonceAdvanced)
	require.Equal(t, uint64(3), settlement.Nonce)
	require.Equal(t, seller, settlement.Seller)
	require.Zero(t, gross.Cmp(settlement.TotalPaid()))
}

func TestKeys(t *testing.T) {
	key := domain.NonceKey{
		Asset:  common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		UnitId: common.BigToHash(big.NewInt(1)),
		Owner:  seller,
	}
	fill := domain.FillKey{NonceKey: key, Nonce: 2}

	require.Equal(
		t,
		"0x5FbDB2315678afecb367f032d93F642f64180aa3:"+
			"0x0000000000000000000000000000000000000000000000000000000000000001:"+
			"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		key.String(),
	)
	require.Equal(t, key.String()+":2", fill.String())
}
