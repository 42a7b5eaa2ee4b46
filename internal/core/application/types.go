package application

import (
	"context"
	"math/big"

	"github.com/arkade-os/offerd/internal/core/domain"
	"github.com/ethereum/go-ethereum/common"
)

type Service interface {
	Start() error
	Stop()
	GetInfo(ctx context.Context) (*ServiceInfo, error)
	// Buy settles a signed order, the gross payment is debited from the buyer
	// that must have signed the buy authorization.
	Buy(ctx context.Context, req BuyRequest) (*domain.Settlement, error)
	QuoteOrder(ctx context.Context, req QuoteRequest) (*Quote, error)
	GetNonce(
		ctx context.Context, asset common.Address, unitId common.Hash, owner common.Address,
	) (uint64, error)
	GetFillState(
		ctx context.Context, asset common.Address, unitId common.Hash, owner common.Address,
	) (*FillState, error)
	GetSettlement(ctx context.Context, id string) (*domain.Settlement, error)
	ListSettlements(
		ctx context.Context, asset common.Address, unitId common.Hash,
	) ([]domain.Settlement, error)
	Mint(ctx context.Context, req MintRequest) (*domain.UnitClass, error)
	GetUnitClass(
		ctx context.Context, asset common.Address, unitId common.Hash,
	) (*domain.UnitClass, error)
	SetApprovalForAll(ctx context.Context, req ApprovalRequest) error
	GetApprovalNonce(ctx context.Context, owner common.Address) (uint64, error)
	GetUnitBalance(
		ctx context.Context, asset common.Address, unitId common.Hash, owner common.Address,
	) (uint64, error)
	GetBalance(ctx context.Context, addr common.Address) (*big.Int, error)
}

type ServiceInfo struct {
	Exchange     common.Address
	MintSigner   common.Address
	BuyerFeeBps  uint32
	SellerFeeBps uint32
	FeeRecipient common.Address
}

type BuyRequest struct {
	Buyer         common.Address
	Asset         common.Address
	UnitId        common.Hash
	Owner         common.Address
	OfferedAmount uint64
	BuyingAmount  uint64
	Signature     []byte
	GrossPayment  *big.Int
	// BuyerSignature is the buyer's signature over the order.BuyAuthorization
	// of this purchase against the live fill state.
	BuyerSignature []byte
}

type QuoteRequest struct {
	Asset         common.Address
	UnitId        common.Hash
	Owner         common.Address
	PricePerUnit  *big.Int
	OfferedAmount uint64
}

// Quote is what a seller needs to sign an order against the live nonce.
type Quote struct {
	Nonce       uint64
	Filled      uint64
	Remaining   uint64
	Digest      common.Hash
	SigningHash common.Hash
}

type FillState struct {
	Nonce  uint64
	Filled uint64
}

type MintRequest struct {
	Creator   common.Address
	Asset     common.Address
	UnitId    common.Hash
	Supply    uint64
	Uri       string
	Royalties []domain.RoyaltyFee
	// Signature of the mint signer over the mint authorization of
	// (Asset, UnitId).
	Signature []byte
}

// ApprovalRequest carries an operator approval signed by the owner over
// order.ApprovalAuthorization with its live approval nonce.
type ApprovalRequest struct {
	Asset     common.Address
	Owner     common.Address
	Operator  common.Address
	Approved  bool
	Signature []byte
}

type FeeSettings struct {
	BuyerFeeBps   uint32
	SellerFeeBps  uint32
	FeeRecipient  common.Address
	Proxies       []common.Address
	NonceOperator common.Address
}
