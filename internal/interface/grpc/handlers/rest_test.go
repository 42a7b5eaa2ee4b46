package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arkade-os/offerd/internal/core/application"
	badgerdb "github.com/arkade-os/offerd/internal/infrastructure/db/badger"
	inmemorylocker "github.com/arkade-os/offerd/internal/infrastructure/locker/inmemory"
	"github.com/arkade-os/offerd/internal/infrastructure/signer"
	"github.com/arkade-os/offerd/internal/interface/grpc/handlers"
	"github.com/arkade-os/offerd/internal/interface/grpc/interceptors"
	"github.com/arkade-os/offerd/pkg/api"
	"github.com/arkade-os/offerd/pkg/order"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
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
	royalty      = common.HexToAddress("0x1000000000000000000000000000000000000008")
	asset        = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

	buyerKey, buyer = testKey(buyerKeyHex)
)

type restEnv struct {
	market        api.MarketServiceServer
	admin         api.AdminServiceServer
	server        *httptest.Server
	readiness     *interceptors.ReadinessService
	mintSignerKey *btcec.PrivateKey
	sellerKey     *btcec.PrivateKey
	seller        common.Address
}

func newRestEnv(t *testing.T) *restEnv {
	repoManager, err := badgerdb.NewRepoManager("", nil)
	require.NoError(t, err)

	mintSignerKey, err := order.ParsePrivateKey(mintSignerKeyHex)
	require.NoError(t, err)
	sellerKey, err := order.ParsePrivateKey(sellerKeyHex)
	require.NoError(t, err)

	svc, err := application.NewService(
		repoManager, inmemorylocker.NewLocker(), signer.NewVerifier(),
		admin, exchange, order.AddressFromPubKey(mintSignerKey.PubKey()),
		250, 250, feeRecipient,
	)
	require.NoError(t, err)
	require.NoError(t, svc.Start())
	t.Cleanup(svc.Stop)

	readiness := interceptors.NewReadinessService()
	readiness.MarkAppServiceStarted()

	market := handlers.NewMarketHandler("test", svc)
	adminHandler := handlers.NewAdminHandler(application.NewAdminService(repoManager, admin))
	handler := handlers.NewRestHandler(market, adminHandler, interceptors.UnaryChain(readiness))
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &restEnv{
		market:        market,
		admin:         adminHandler,
		server:        server,
		readiness:     readiness,
		mintSignerKey: mintSignerKey,
		sellerKey:     sellerKey,
		seller:        order.AddressFromPubKey(sellerKey.PubKey()),
	}
}

func (e *restEnv) get(t *testing.T, path string, resp any) int {
	res, err := http.Get(e.server.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(resp))
	return res.StatusCode
}

func (e *restEnv) post(t *testing.T, path string, body, resp any) int {
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(e.server.URL+path, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(resp))
	return res.StatusCode
}

func (e *restEnv) mint(t *testing.T, unitId string, supply uint64) {
	id, err := order.ParseUnitID(unitId)
	require.NoError(t, err)
	auth := order.MintAuthorization{Asset: asset, UnitId: id}
	sig, err := order.Sign(e.mintSignerKey, auth.SigningHash())
	require.NoError(t, err)

	var minted api.MintResponse
	code := e.post(t, "/v1/unit/mint", api.MintRequest{
		Creator:   e.seller.Hex(),
		Asset:     asset.Hex(),
		UnitId:    unitId,
		Supply:    supply,
		Uri:       "fakeTokenURI",
		Royalties: []api.RoyaltyFee{{Recipient: royalty.Hex(), Bps: 10}},
		Signature: hexutil.Encode(sig),
	}, &minted)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, minted.Unit)
	require.Equal(t, supply, minted.Unit.Supply)

	var approval api.SetApprovalForAllResponse
	code = e.post(t, "/v1/approval", e.approvalRequest(t, e.sellerKey, exchange), &approval)
	require.Equal(t, http.StatusOK, code)
}

// approvalRequest approves operator on behalf of the owner of key, signed
// against the owner's live approval nonce.
func (e *restEnv) approvalRequest(
	t *testing.T, key *btcec.PrivateKey, operator common.Address,
) api.SetApprovalForAllRequest {
	owner := order.AddressFromPubKey(key.PubKey())
	var nonce api.GetApprovalNonceResponse
	code := e.get(t, "/v1/approval/nonce/"+owner.Hex(), &nonce)
	require.Equal(t, http.StatusOK, code)

	auth := order.ApprovalAuthorization{
		Asset:    asset,
		Owner:    owner,
		Operator: operator,
		Approved: true,
		Nonce:    nonce.Nonce,
	}
	sig, err := order.Sign(key, auth.SigningHash())
	require.NoError(t, err)
	return api.SetApprovalForAllRequest{
		Asset:     asset.Hex(),
		Owner:     owner.Hex(),
		Operator:  operator.Hex(),
		Approved:  true,
		Signature: hexutil.Encode(sig),
	}
}

// authorizeBuy signs with key the buy authorization of the buyer for
// buying units of the given order at the given fill state.
func (e *restEnv) authorizeBuy(
	t *testing.T, key *btcec.PrivateKey, unitId string, price *big.Int,
	offered, nonce, filled, buying uint64,
) string {
	id, err := order.ParseUnitID(unitId)
	require.NoError(t, err)
	o := order.Order{
		Asset:         asset,
		UnitId:        id,
		PricePerUnit:  price,
		OfferedAmount: offered,
		Nonce:         nonce,
	}
	auth := order.BuyAuthorization{
		Order:        o.SigningHash(),
		Filled:       filled,
		BuyingAmount: buying,
		GrossPayment: new(big.Int).Mul(price, new(big.Int).SetUint64(buying)),
		Buyer:        buyer,
	}
	sig, err := order.Sign(key, auth.SigningHash())
	require.NoError(t, err)
	return hexutil.Encode(sig)
}

func (e *restEnv) signOrder(
	t *testing.T, unitId string, price *big.Int, offered, nonce uint64,
) string {
	id, err := order.ParseUnitID(unitId)
	require.NoError(t, err)
	o := order.Order{
		Asset:         asset,
		UnitId:        id,
		PricePerUnit:  price,
		OfferedAmount: offered,
		Nonce:         nonce,
	}
	sig, err := order.Sign(e.sellerKey, o.SigningHash())
	require.NoError(t, err)
	return hexutil.Encode(sig)
}

func TestRestInfo(t *testing.T) {
	env := newRestEnv(t)

	var info api.GetInfoResponse
	code := env.get(t, "/v1/info", &info)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "test", info.Version)
	assert.Equal(t, exchange.Hex(), info.Exchange)
	assert.Equal(t, uint32(250), info.BuyerFeeBps)
	assert.Equal(t, uint32(250), info.SellerFeeBps)
	assert.Equal(t, feeRecipient.Hex(), info.FeeRecipient)

	var health map[string]string
	code = env.get(t, "/healthz", &health)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "SERVING", health["status"])
}

func TestRestBuy(t *testing.T) {
	env := newRestEnv(t)
	env.mint(t, "1", 10)

	var deposit api.DepositResponse
	code := env.post(t, "/v1/admin/deposit", api.DepositRequest{
		Address: buyer.Hex(),
		Amount:  "1000",
	}, &deposit)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "1000", deposit.Balance)

	price := big.NewInt(100)
	sig := env.signOrder(t, "1", price, 4, 0)

	t.Run("quote", func(t *testing.T) {
		var quote api.QuoteOrderResponse
		code := env.post(t, "/v1/order/quote", api.QuoteOrderRequest{
			Asset:         asset.Hex(),
			UnitId:        "1",
			Owner:         env.seller.Hex(),
			PricePerUnit:  price.String(),
			OfferedAmount: 4,
		}, &quote)
		require.Equal(t, http.StatusOK, code)
		require.Zero(t, quote.Nonce)
		require.Equal(t, uint64(4), quote.Remaining)
	})

	buyerSig := env.authorizeBuy(t, buyerKey, "1", price, 4, 0, 0, 4)

	t.Run("invalid", func(t *testing.T) {
		fixtures := []struct {
			name         string
			req          api.BuyRequest
			expectedCode int
			expectedName string
		}{
			{
				name: "malformed buyer",
				req: api.BuyRequest{
					Buyer: "buyer", Asset: asset.Hex(), UnitId: "1",
					Owner: env.seller.Hex(), OfferedAmount: 4, BuyingAmount: 2,
					Signature: sig, GrossPayment: "200", BuyerSignature: buyerSig,
				},
				expectedCode: http.StatusBadRequest,
			},
			{
				name: "missing buyer signature",
				req: api.BuyRequest{
					Buyer: buyer.Hex(), Asset: asset.Hex(), UnitId: "1",
					Owner: env.seller.Hex(), OfferedAmount: 4, BuyingAmount: 4,
					Signature: sig, GrossPayment: "400",
				},
				expectedCode: http.StatusBadRequest,
			},
			{
				name: "buyer signature by the seller",
				req: api.BuyRequest{
					Buyer: buyer.Hex(), Asset: asset.Hex(), UnitId: "1",
					Owner: env.seller.Hex(), OfferedAmount: 4, BuyingAmount: 4,
					Signature: sig, GrossPayment: "400",
					BuyerSignature: env.authorizeBuy(t, env.sellerKey, "1", price, 4, 0, 0, 4),
				},
				expectedCode: http.StatusBadRequest,
				expectedName: "INCORRECT_SIGNATURE",
			},
			{
				name: "price mismatch",
				req: api.BuyRequest{
					Buyer: buyer.Hex(), Asset: asset.Hex(), UnitId: "1",
					Owner: env.seller.Hex(), OfferedAmount: 4, BuyingAmount: 2,
					Signature: sig, GrossPayment: "100", BuyerSignature: buyerSig,
				},
				expectedCode: http.StatusBadRequest,
				expectedName: "INCORRECT_SIGNATURE",
			},
		}
		for _, f := range fixtures {
			t.Run(f.name, func(t *testing.T) {
				var errResp api.ErrorResponse
				code := env.post(t, "/v1/order/buy", f.req, &errResp)
				require.Equal(t, f.expectedCode, code)
				require.NotEmpty(t, errResp.Message)
				require.Equal(t, f.expectedName, errResp.Name)
			})
		}
	})

	t.Run("valid", func(t *testing.T) {
		var resp api.BuyResponse
		code := env.post(t, "/v1/order/buy", api.BuyRequest{
			Buyer: buyer.Hex(), Asset: asset.Hex(), UnitId: "1",
			Owner: env.seller.Hex(), OfferedAmount: 4, BuyingAmount: 4,
			Signature: sig, GrossPayment: "400", BuyerSignature: buyerSig,
		}, &resp)
		require.Equal(t, http.StatusOK, code)
		require.NotNil(t, resp.Settlement)
		require.Equal(t, uint64(4), resp.Settlement.Amount)
		require.True(t, resp.Settlement.NonceAdvanced)
		require.Len(t, resp.Settlement.Payouts, 3)
		require.Equal(t, "marketplace", resp.Settlement.Payouts[0].Kind)
		require.Equal(t, "seller", resp.Settlement.Payouts[2].Kind)

		path := fmt.Sprintf("/v1/nonce/%s/1/%s", asset.Hex(), env.seller.Hex())
		var nonce api.GetNonceResponse
		require.Equal(t, http.StatusOK, env.get(t, path, &nonce))
		require.Equal(t, uint64(1), nonce.Nonce)

		path = fmt.Sprintf("/v1/unit/%s/1/balance/%s", asset.Hex(), buyer.Hex())
		var units api.GetUnitBalanceResponse
		require.Equal(t, http.StatusOK, env.get(t, path, &units))
		require.Equal(t, uint64(4), units.Balance)

		var settlement api.GetSettlementResponse
		path = "/v1/settlement/" + resp.Settlement.Id
		require.Equal(t, http.StatusOK, env.get(t, path, &settlement))
		require.Equal(t, resp.Settlement.Id, settlement.Settlement.Id)

		var list api.ListSettlementsResponse
		path = fmt.Sprintf("/v1/settlements/%s/1", asset.Hex())
		require.Equal(t, http.StatusOK, env.get(t, path, &list))
		require.Len(t, list.Settlements, 1)

		var balance api.GetBalanceResponse
		require.Equal(t, http.StatusOK, env.get(t, "/v1/balance/"+buyer.Hex(), &balance))
		require.Equal(t, "600", balance.Balance)
	})

	t.Run("replay", func(t *testing.T) {
		var errResp api.ErrorResponse
		code := env.post(t, "/v1/order/buy", api.BuyRequest{
			Buyer: buyer.Hex(), Asset: asset.Hex(), UnitId: "1",
			Owner: env.seller.Hex(), OfferedAmount: 4, BuyingAmount: 4,
			Signature: sig, GrossPayment: "400", BuyerSignature: buyerSig,
		}, &errResp)
		require.Equal(t, http.StatusBadRequest, code)
		require.Equal(t, "INCORRECT_SIGNATURE", errResp.Name)
	})
}

func TestRestApproval(t *testing.T) {
	env := newRestEnv(t)
	path := "/v1/approval/nonce/" + env.seller.Hex()

	req := env.approvalRequest(t, env.sellerKey, exchange)
	unsigned := req
	unsigned.Signature = ""
	var errResp api.ErrorResponse
	code := env.post(t, "/v1/approval", unsigned, &errResp)
	require.Equal(t, http.StatusBadRequest, code)
	require.Contains(t, errResp.Message, "missing signature")

	// Approving the exchange on behalf of the seller.
	foreign := env.approvalRequest(t, env.mintSignerKey, exchange)
	foreign.Owner = env.seller.Hex()
	code = env.post(t, "/v1/approval", foreign, &errResp)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "INVALID_APPROVAL_SIGNATURE", errResp.Name)

	var nonce api.GetApprovalNonceResponse
	require.Equal(t, http.StatusOK, env.get(t, path, &nonce))
	require.Zero(t, nonce.Nonce)

	var empty struct{}
	require.Equal(t, http.StatusOK, env.post(t, "/v1/approval", req, &empty))
	require.Equal(t, http.StatusOK, env.get(t, path, &nonce))
	require.Equal(t, uint64(1), nonce.Nonce)

	code = env.post(t, "/v1/approval", req, &errResp)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, "INVALID_APPROVAL_SIGNATURE", errResp.Name)
}

func TestRestAdmin(t *testing.T) {
	env := newRestEnv(t)

	var empty struct{}
	code := env.post(t, "/v1/admin/fees/rates", api.SetRatesRequest{
		BuyerFeeBps: 100, SellerFeeBps: 300,
	}, &empty)
	require.Equal(t, http.StatusOK, code)

	var errResp api.ErrorResponse
	code = env.post(t, "/v1/admin/fees/rates", api.SetRatesRequest{
		BuyerFeeBps: 10000, SellerFeeBps: 300,
	}, &errResp)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "INVALID_FEE_RATE", errResp.Name)

	code = env.post(t, "/v1/admin/proxy/add", api.ProxyRequest{
		Proxy: buyer.Hex(),
	}, &errResp)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "NOT_A_CONTRACT", errResp.Name)

	var settings api.GetFeeSettingsResponse
	require.Equal(t, http.StatusOK, env.get(t, "/v1/admin/fees", &settings))
	assert.Equal(t, uint32(100), settings.BuyerFeeBps)
	assert.Equal(t, uint32(300), settings.SellerFeeBps)
	assert.Equal(t, feeRecipient.Hex(), settings.FeeRecipient)
	assert.Equal(t, []string{exchange.Hex()}, settings.Proxies)
	assert.Equal(t, exchange.Hex(), settings.NonceOperator)
}

func TestRestNotReady(t *testing.T) {
	env := newRestEnv(t)
	env.readiness.MarkAppServiceStopped()

	var errResp api.ErrorResponse
	code := env.get(t, "/v1/info", &errResp)
	require.Equal(t, http.StatusServiceUnavailable, code)

	env.readiness.MarkAppServiceStarted()
	var info api.GetInfoResponse
	require.Equal(t, http.StatusOK, env.get(t, "/v1/info", &info))
}

func TestRestNotFound(t *testing.T) {
	env := newRestEnv(t)

	var errResp api.ErrorResponse
	code := env.get(t, "/v1/settlement/missing", &errResp)
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "NOT_FOUND", errResp.Name)

	path := fmt.Sprintf("/v1/unit/%s/42", asset.Hex())
	code = env.get(t, path, &errResp)
	require.Equal(t, http.StatusNotFound, code)
}

func testKey(hexKey string) (*btcec.PrivateKey, common.Address) {
	key, err := order.ParsePrivateKey(hexKey)
	if err != nil {
		panic(err)
	}
	return key, order.AddressFromPubKey(key.PubKey())
}
