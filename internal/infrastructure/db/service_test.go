package db_test

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/arkade-os/offerd/internal/infrastructure/db"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	asset    = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	unitId   = common.HexToHash("0x2222222222222222222222222222222222222222222222222222222222224656")
	seller   = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	buyer    = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	exchange = common.HexToAddress("0x90F79bf6EB2c4f870365E785982E1f101E93b906")
)

func TestService(t *testing.T) {
	dbDir := t.TempDir()
	tests := []struct {
		name   string
		config db.ServiceConfig
	}{
		{
			name: "repo_manager_with_badger_store",
			config: db.ServiceConfig{
				DbType:   "badger",
				DbConfig: []interface{}{"", nil},
			},
		},
		{
			name: "repo_manager_with_sqlite_store",
			config: db.ServiceConfig{
				DbType:   "sqlite",
				DbConfig: []interface{}{dbDir},
			},
		},
	}
	if pgDsn := os.Getenv("OFFERD_TEST_PG_URL"); pgDsn != "" {
		tests = append(tests, struct {
			name   string
			config db.ServiceConfig
		}{
			name: "repo_manager_with_postgres_store",
			config: db.ServiceConfig{
				DbType:   "postgres",
				DbConfig: []interface{}{pgDsn, true},
			},
		})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := db.NewService(tt.config)
			require.NoError(t, err)
			require.NotNil(t, svc)
			defer svc.Close()

			// Keys are randomized per run so the tests can share a persistent
			// postgres db.
			suffix := time.Now().UnixNano()
			testNonceRepository(t, svc, suffix)
			testFillRepository(t, svc, suffix)
			testSettingsRepository(t, svc)
			testAccountRepository(t, svc, suffix)
			testUnitRepository(t, svc, suffix)
			testSettlementRepository(t, svc, suffix)
			testRollback(t, svc, suffix)
			testConcurrentUpdates(t, svc, suffix)
		})
	}
}

func TestInvalidDbType(t *testing.T) {
	svc, err := db.NewService(db.ServiceConfig{DbType: "mongo"})
	require.Error(t, err)
	require.Nil(t, svc)
}

func testNonceRepository(t *testing.T, svc ports.RepoManager, suffix int64) {
	t.Run("test_nonce_repository", func(t *testing.T) {
		ctx := context.Background()
		key := domain.NonceKey{Asset: asset, UnitId: hashWithSuffix(unitId, suffix), Owner: seller}
		other := domain.NonceKey{Asset: asset, UnitId: key.UnitId, Owner: buyer}

		err := svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			nonce, err := repos.Nonces().GetNonce(ctx, key)
			require.NoError(t, err)
			require.Zero(t, nonce)

			nonce, err = repos.Nonces().IncrementNonce(ctx, key)
			require.NoError(t, err)
			require.Equal(t, uint64(1), nonce)

			nonce, err = repos.Nonces().IncrementNonce(ctx, key)
			require.NoError(t, err)
			require.Equal(t, uint64(2), nonce)
			return nil
		})
		require.NoError(t, err)

		err = svc.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
			nonce, err := repos.Nonces().GetNonce(ctx, key)
			require.NoError(t, err)
			require.Equal(t, uint64(2), nonce)

			nonce, err = repos.Nonces().GetNonce(ctx, other)
			require.NoError(t, err)
			require.Zero(t, nonce)
			return nil
		})
		require.NoError(t, err)
	})
}

func testFillRepository(t *testing.T, svc ports.RepoManager, suffix int64) {
	t.Run("test_fill_repository", func(t *testing.T) {
		ctx := context.Background()
		nonceKey := domain.NonceKey{
			Asset: asset, UnitId: hashWithSuffix(unitId, suffix), Owner: seller,
		}
		key := domain.FillKey{NonceKey: nonceKey, Nonce: 0}
		nextKey := domain.FillKey{NonceKey: nonceKey, Nonce: 1}

		err := svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			filled, err := repos.Fills().AddFilled(ctx, key, 30)
			require.NoError(t, err)
			require.Equal(t, uint64(30), filled)

			filled, err = repos.Fills().AddFilled(ctx, key, 70)
			require.NoError(t, err)
			require.Equal(t, uint64(100), filled)
			return nil
		})
		require.NoError(t, err)

		err = svc.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
			filled, err := repos.Fills().GetFilled(ctx, key)
			require.NoError(t, err)
			require.Equal(t, uint64(100), filled)

			filled, err = repos.Fills().GetFilled(ctx, nextKey)
			require.NoError(t, err)
			require.Zero(t, filled)
			return nil
		})
		require.NoError(t, err)

		// Totals above math.MaxInt64 must round-trip.
		bigKey := domain.FillKey{NonceKey: nonceKey, Nonce: 2}
		err = svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			filled, err := repos.Fills().AddFilled(ctx, bigKey, math.MaxInt64)
			require.NoError(t, err)
			require.Equal(t, uint64(math.MaxInt64), filled)

			filled, err = repos.Fills().AddFilled(ctx, bigKey, 10)
			require.NoError(t, err)
			require.Equal(t, uint64(math.MaxInt64)+10, filled)
			return nil
		})
		require.NoError(t, err)

		err = svc.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
			filled, err := repos.Fills().GetFilled(ctx, bigKey)
			require.NoError(t, err)
			require.Equal(t, uint64(math.MaxInt64)+10, filled)
			return nil
		})
		require.NoError(t, err)

		err = svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			_, err := repos.Fills().AddFilled(ctx, bigKey, math.MaxUint64)
			return err
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "fill state overflow")
	})
}

func testSettingsRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_settings_repository", func(t *testing.T) {
		ctx := context.Background()
		recipient := common.HexToAddress("0x9965507D1a55bcC2695C58ba16FB37d819B0A4dc")

		settings := domain.NewSettings(250, 300, recipient)
		settings.AddProxy(exchange)
		settings.NonceOperator = exchange

		err := svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			return repos.Settings().Upsert(ctx, *settings)
		})
		require.NoError(t, err)

		var got *domain.Settings
		err = svc.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
			var err error
			got, err = repos.Settings().Get(ctx)
			return err
		})
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, uint32(250), got.BuyerFeeBps)
		require.Equal(t, uint32(300), got.SellerFeeBps)
		require.Equal(t, recipient, got.FeeRecipient)
		require.Equal(t, []common.Address{exchange}, got.Proxies)
		require.Equal(t, exchange, got.NonceOperator)

		got.RemoveProxy(exchange)
		got.SellerFeeBps = 0
		err = svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			return repos.Settings().Upsert(ctx, *got)
		})
		require.NoError(t, err)

		err = svc.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
			settings, err := repos.Settings().Get(ctx)
			require.NoError(t, err)
			require.Empty(t, settings.Proxies)
			require.Zero(t, settings.SellerFeeBps)
			return nil
		})
		require.NoError(t, err)
	})
}

func testAccountRepository(t *testing.T, svc ports.RepoManager, suffix int64) {
	t.Run("test_account_repository", func(t *testing.T) {
		ctx := context.Background()
		addr := addressWithSuffix(suffix)
		balance, _ := new(big.Int).SetString("1000000000000000000000", 10)

		err := svc.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
			account, err := repos.Accounts().Get(ctx, addr)
			require.NoError(t, err)
			require.Equal(t, addr, account.Address)
			require.Zero(t, account.Balance.Sign())
			require.False(t, account.IsContract)
			return nil
		})
		require.NoError(t, err)

		err = svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			return repos.Accounts().Upsert(ctx, domain.Account{
				Address:         addr,
				Balance:         balance,
				IsContract:      true,
				RejectsPayments: true,
				ApprovalNonce:   3,
			})
		})
		require.NoError(t, err)

		err = svc.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
			account, err := repos.Accounts().Get(ctx, addr)
			require.NoError(t, err)
			require.Zero(t, balance.Cmp(account.Balance))
			require.True(t, account.IsContract)
			require.True(t, account.RejectsPayments)
			require.Equal(t, uint64(3), account.ApprovalNonce)
			return nil
		})
		require.NoError(t, err)

		// A zero balance must come back as a usable value.
		err = svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			return repos.Accounts().Upsert(ctx, *domain.NewAccount(addr))
		})
		require.NoError(t, err)
		err = svc.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
			account, err := repos.Accounts().Get(ctx, addr)
			require.NoError(t, err)
			require.NotNil(t, account.Balance)
			require.Zero(t, account.Balance.Sign())
			return nil
		})
		require.NoError(t, err)
	})
}

func testUnitRepository(t *testing.T, svc ports.RepoManager, suffix int64) {
	t.Run("test_unit_repository", func(t *testing.T) {
		ctx := context.Background()
		id := hashWithSuffix(unitId, suffix)
		unit := domain.UnitClass{
			Asset:   asset,
			UnitId:  id,
			Creator: seller,
			Supply:  100,
			Uri:     "ipfs://unit",
			Royalties: []domain.RoyaltyFee{
				{Recipient: common.HexToAddress("0x01"), Bps: 10},
				{Recipient: common.HexToAddress("0x02"), Bps: 10},
			},
			CreatedAt: time.Now(),
		}

		err := svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			got, err := repos.Units().GetUnitClass(ctx, asset, id)
			require.NoError(t, err)
			require.Nil(t, got)

			if err := repos.Units().AddUnitClass(ctx, unit); err != nil {
				return err
			}
			return repos.Units().SetBalance(ctx, domain.Holding{
				Asset: asset, UnitId: id, Owner: seller, Amount: unit.Supply,
			})
		})
		require.NoError(t, err)

		err = svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			return repos.Units().AddUnitClass(ctx, unit)
		})
		require.Error(t, err)

		err = svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			approved, err := repos.Units().IsApprovedForAll(ctx, asset, seller, exchange)
			require.NoError(t, err)
			require.False(t, approved)
			return repos.Units().SetApprovalForAll(ctx, asset, seller, exchange, true)
		})
		require.NoError(t, err)

		err = svc.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
			got, err := repos.Units().GetUnitClass(ctx, asset, id)
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Equal(t, seller, got.Creator)
			require.Equal(t, uint64(100), got.Supply)
			require.Equal(t, "ipfs://unit", got.Uri)
			require.Equal(t, unit.Royalties, got.Royalties)
			require.Equal(t, []uint32{10, 10}, got.RoyaltyBps())

			balance, err := repos.Units().GetBalance(ctx, asset, id, seller)
			require.NoError(t, err)
			require.Equal(t, uint64(100), balance)

			balance, err = repos.Units().GetBalance(ctx, asset, id, buyer)
			require.NoError(t, err)
			require.Zero(t, balance)

			approved, err := repos.Units().IsApprovedForAll(ctx, asset, seller, exchange)
			require.NoError(t, err)
			require.True(t, approved)

			approved, err = repos.Units().IsApprovedForAll(ctx, asset, buyer, exchange)
			require.NoError(t, err)
			require.False(t, approved)
			return nil
		})
		require.NoError(t, err)
	})
}

func testSettlementRepository(t *testing.T, svc ports.RepoManager, suffix int64) {
	t.Run("test_settlement_repository", func(t *testing.T) {
		ctx := context.Background()
		id := hashWithSuffix(unitId, suffix)
		fill := domain.FillKey{
			NonceKey: domain.NonceKey{Asset: asset, UnitId: id, Owner: seller},
		}
		price := big.NewInt(200_000_000_000_000)
		payouts := []domain.Payout{
			{Kind: domain.PayoutKindMarketplace, Recipient: exchange, Amount: big.NewInt(10)},
			{Kind: domain.PayoutKindRoyalty, Recipient: common.HexToAddress("0x01"), Amount: big.NewInt(0)},
			{Kind: domain.PayoutKindSeller, Recipient: seller, Amount: big.NewInt(90)},
		}

		first := domain.NewSettlement(fill, buyer, 30, 100, 30, price, big.NewInt(100), payouts)
		time.Sleep(time.Millisecond)
		second := domain.NewSettlement(fill, buyer, 70, 100, 100, price, big.NewInt(100), payouts)

		err := svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			if err := repos.Settlements().Add(ctx, *first); err != nil {
				return err
			}
			return repos.Settlements().Add(ctx, *second)
		})
		require.NoError(t, err)

		err = svc.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
			got, err := repos.Settlements().Get(ctx, first.Id)
			require.NoError(t, err)
			require.NotNil(t, got)
			require.Equal(t, first.Seller, got.Seller)
			require.Equal(t, first.Buyer, got.Buyer)
			require.Equal(t, uint64(30), got.Amount)
			require.False(t, got.NonceAdvanced)
			require.Zero(t, price.Cmp(got.PricePerUnit))
			require.Len(t, got.Payouts, 3)
			for i, payout := range got.Payouts {
				require.Equal(t, payouts[i].Kind, payout.Kind)
				require.Equal(t, payouts[i].Recipient, payout.Recipient)
				require.Zero(t, payouts[i].Amount.Cmp(payout.Amount))
			}
			require.Zero(t, big.NewInt(100).Cmp(got.TotalPaid()))

			got, err = repos.Settlements().Get(ctx, "unknown")
			require.NoError(t, err)
			require.Nil(t, got)

			list, err := repos.Settlements().List(ctx, asset, id)
			require.NoError(t, err)
			require.Len(t, list, 2)
			require.Equal(t, first.Id, list[0].Id)
			require.Equal(t, second.Id, list[1].Id)
			require.True(t, list[1].NonceAdvanced)

			list, err = repos.Settlements().List(ctx, buyer, id)
			require.NoError(t, err)
			require.Empty(t, list)
			return nil
		})
		require.NoError(t, err)
	})
}

func testRollback(t *testing.T, svc ports.RepoManager, suffix int64) {
	t.Run("test_rollback", func(t *testing.T) {
		ctx := context.Background()
		key := domain.NonceKey{Asset: asset, UnitId: hashWithSuffix(unitId, suffix+1), Owner: seller}
		addr := addressWithSuffix(suffix + 1)
		failure := fmt.Errorf("payment rejected")

		err := svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
			if _, err := repos.Nonces().IncrementNonce(ctx, key); err != nil {
				return err
			}
			account := domain.NewAccount(addr)
			account.Balance = big.NewInt(42)
			if err := repos.Accounts().Upsert(ctx, *account); err != nil {
				return err
			}
			return failure
		})
		require.ErrorIs(t, err, failure)

		err = svc.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
			nonce, err := repos.Nonces().GetNonce(ctx, key)
			require.NoError(t, err)
			require.Zero(t, nonce)

			account, err := repos.Accounts().Get(ctx, addr)
			require.NoError(t, err)
			require.Zero(t, account.Balance.Sign())
			return nil
		})
		require.NoError(t, err)
	})
}

func testConcurrentUpdates(t *testing.T, svc ports.RepoManager, suffix int64) {
	t.Run("test_concurrent_updates", func(t *testing.T) {
		ctx := context.Background()
		key := domain.NonceKey{Asset: asset, UnitId: hashWithSuffix(unitId, suffix+2), Owner: seller}
		count := 4

		wg := &sync.WaitGroup{}
		wg.Add(count)
		for range count {
			go func() {
				defer wg.Done()
				err := svc.Update(ctx, func(ctx context.Context, repos ports.Repositories) error {
					_, err := repos.Nonces().IncrementNonce(ctx, key)
					return err
				})
				if err != nil {
					t.Error(err)
				}
			}()
		}
		wg.Wait()

		err := svc.View(ctx, func(ctx context.Context, repos ports.Repositories) error {
			nonce, err := repos.Nonces().GetNonce(ctx, key)
			require.NoError(t, err)
			require.Equal(t, uint64(count), nonce)
			return nil
		})
		require.NoError(t, err)
	})
}

func hashWithSuffix(h common.Hash, suffix int64) common.Hash {
	return common.BigToHash(new(big.Int).Add(h.Big(), big.NewInt(suffix)))
}

func addressWithSuffix(suffix int64) common.Address {
	return common.BigToAddress(big.NewInt(suffix))
}
