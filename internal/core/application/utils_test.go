package application_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/arkade-os/offerd/internal/core/application"
	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/arkade-os/offerd/internal/core/ports"
	badgerdb "github.com/arkade-os/offerd/internal/infrastructure/db/badger"
	inmemorylocker "github.com/arkade-os/offerd/internal/infrastructure/locker/inmemory"
	"github.com/arkade-os/offerd/internal/infrastructure/signer"
	"github.com/arkade-os/offerd/pkg/order"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

const (
	mintSignerKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	sellerKeyHex     = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	buyerKeyHex      = "5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a"
)

var (
	admin        = common.HexToAddress("0x1000000000000000000000000000000000000001")
	exchange     = common.HexToAddress("0x1000000000000000000000000000000000000002")
	feeRecipient = common.HexToAddress("0x1000000000000000000000000000000000000005")
	royaltyOne   = common.HexToAddress("0x1000000000000000000000000000000000000008")
	royaltyTwo   = common.HexToAddress("0x1000000000000000000000000000000000000009")
	asset        = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

	buyerKey, buyer = testKey(buyerKeyHex)
)

type testEnv struct {
	svc         application.Service
	admin       application.AdminService
	repoManager ports.RepoManager

	mintSignerKey *btcec.PrivateKey
	sellerKey     *btcec.PrivateKey
	seller        common.Address
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithVerifier(t, signer.NewVerifier())
}

func newTestEnvWithVerifier(t *testing.T, verifier ports.SignatureVerifier) *testEnv {
	repoManager, err := badgerdb.NewRepoManager("", nil)
	require.NoError(t, err)

	mintSignerKey, err := order.ParsePrivateKey(mintSignerKeyHex)
	require.NoError(t, err)
	sellerKey, err := order.ParsePrivateKey(sellerKeyHex)
	require.NoError(t, err)

	svc, err := application.NewService(
		repoManager, inmemorylocker.NewLocker(), verifier,
		admin, exchange, order.AddressFromPubKey(mintSignerKey.PubKey()),
		250, 250, feeRecipient,
	)
	require.NoError(t, err)
	require.NoError(t, svc.Start())
	t.Cleanup(svc.Stop)

	return &testEnv{
		svc:           svc,
		admin:         application.NewAdminService(repoManager, admin),
		repoManager:   repoManager,
		mintSignerKey: mintSignerKey,
		sellerKey:     sellerKey,
		seller:        order.AddressFromPubKey(sellerKey.PubKey()),
	}
}

// mint creates a unit class owned by the seller and approves the exchange
// as transfer conduit if approve is set.
func (e *testEnv) mint(
	t *testing.T, unitId common.Hash, supply uint64, royalties []domain.RoyaltyFee, approve bool,
) {
	ctx := context.Background()
	auth := order.MintAuthorization{Asset: asset, UnitId: unitId}
	sig, err := order.Sign(e.mintSignerKey, auth.SigningHash())
	require.NoError(t, err)

	_, err = e.svc.Mint(ctx, application.MintRequest{
		Creator:   e.seller,
		Asset:     asset,
		UnitId:    unitId,
		Supply:    supply,
		Uri:       "fakeTokenURI",
		Royalties: royalties,
		Signature: sig,
	})
	require.NoError(t, err)

	if approve {
		err = e.svc.SetApprovalForAll(ctx, e.approvalRequest(t, e.sellerKey, exchange, true))
		require.NoError(t, err)
	}
}

// approvalRequest signs an approval of operator by the owner of key against
// its live approval nonce.
func (e *testEnv) approvalRequest(
	t *testing.T, key *btcec.PrivateKey, operator common.Address, approved bool,
) application.ApprovalRequest {
	owner := order.AddressFromPubKey(key.PubKey())
	nonce, err := e.svc.GetApprovalNonce(context.Background(), owner)
	require.NoError(t, err)

	auth := order.ApprovalAuthorization{
		Asset:    asset,
		Owner:    owner,
		Operator: operator,
		Approved: approved,
		Nonce:    nonce,
	}
	sig, err := order.Sign(key, auth.SigningHash())
	require.NoError(t, err)
	return application.ApprovalRequest{
		Asset:     asset,
		Owner:     owner,
		Operator:  operator,
		Approved:  approved,
		Signature: sig,
	}
}

func (e *testEnv) deposit(t *testing.T, addr common.Address, amount *big.Int) {
	_, err := e.admin.Deposit(context.Background(), addr, amount)
	require.NoError(t, err)
}

// signOrder signs an order against the live nonce of the seller.
func (e *testEnv) signOrder(
	t *testing.T, unitId common.Hash, pricePerUnit *big.Int, offeredAmount uint64,
) []byte {
	nonce, err := e.svc.GetNonce(context.Background(), asset, unitId, e.seller)
	require.NoError(t, err)

	o := order.Order{
		Asset:         asset,
		UnitId:        unitId,
		PricePerUnit:  pricePerUnit,
		OfferedAmount: offeredAmount,
		Nonce:         nonce,
	}
	sig, err := order.Sign(e.sellerKey, o.SigningHash())
	require.NoError(t, err)
	return sig
}

// buyRequest returns a purchase by the buyer, authorized against the live
// fill state of the order.
func (e *testEnv) buyRequest(
	t *testing.T, unitId common.Hash, offered, buying uint64, gross *big.Int, sig []byte,
) application.BuyRequest {
	req := application.BuyRequest{
		Buyer:         buyer,
		Asset:         asset,
		UnitId:        unitId,
		Owner:         e.seller,
		OfferedAmount: offered,
		BuyingAmount:  buying,
		Signature:     sig,
		GrossPayment:  gross,
	}
	req.BuyerSignature = e.authorizeBuy(t, req, buyerKey)
	return req
}

// authorizeBuy signs the buy authorization of req with key. Requests that
// can't describe an order get no signature.
func (e *testEnv) authorizeBuy(
	t *testing.T, req application.BuyRequest, key *btcec.PrivateKey,
) []byte {
	if req.BuyingAmount == 0 || req.GrossPayment == nil {
		return nil
	}
	state, err := e.svc.GetFillState(context.Background(), req.Asset, req.UnitId, req.Owner)
	require.NoError(t, err)

	price := new(big.Int).Quo(req.GrossPayment, new(big.Int).SetUint64(req.BuyingAmount))
	o := order.Order{
		Asset:         req.Asset,
		UnitId:        req.UnitId,
		PricePerUnit:  price,
		OfferedAmount: req.OfferedAmount,
		Nonce:         state.Nonce,
	}
	auth := order.BuyAuthorization{
		Order:        o.SigningHash(),
		Filled:       state.Filled,
		BuyingAmount: req.BuyingAmount,
		GrossPayment: req.GrossPayment,
		Buyer:        req.Buyer,
	}
	sig, err := order.Sign(key, auth.SigningHash())
	require.NoError(t, err)
	return sig
}

func (e *testEnv) requireBalance(t *testing.T, addr common.Address, expected string) {
	balance, err := e.svc.GetBalance(context.Background(), addr)
	require.NoError(t, err)
	require.Equal(t, expected, balance.String())
}

func (e *testEnv) requireUnits(
	t *testing.T, unitId common.Hash, owner common.Address, expected uint64,
) {
	balance, err := e.svc.GetUnitBalance(context.Background(), asset, unitId, owner)
	require.NoError(t, err)
	require.Equal(t, expected, balance)
}

func (e *testEnv) requireNonce(t *testing.T, unitId common.Hash, expected uint64) {
	nonce, err := e.svc.GetNonce(context.Background(), asset, unitId, e.seller)
	require.NoError(t, err)
	require.Equal(t, expected, nonce)
}

func testKey(hexKey string) (*btcec.PrivateKey, common.Address) {
	key, err := order.ParsePrivateKey(hexKey)
	if err != nil {
		panic(err)
	}
	return key, order.AddressFromPubKey(key.PubKey())
}

func bigInt(t *testing.T, s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return v
}
