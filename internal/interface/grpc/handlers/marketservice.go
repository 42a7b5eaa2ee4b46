package handlers

import (
	"context"

	"github.com/arkade-os/offerd/internal/core/application"
	"github.com/arkade-os/offerd/pkg/api"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type marketHandler struct {
	version string
	svc     application.Service
}

func NewMarketHandler(version string, svc application.Service) api.MarketServiceServer {
	return &marketHandler{version, svc}
}

func (h *marketHandler) GetInfo(
	ctx context.Context, _ *api.GetInfoRequest,
) (*api.GetInfoResponse, error) {
	info, err := h.svc.GetInfo(ctx)
	if err != nil {
		return nil, err
	}
	return &api.GetInfoResponse{
		Version:      h.version,
		Exchange:     info.Exchange.Hex(),
		MintSigner:   info.MintSigner.Hex(),
		BuyerFeeBps:  info.BuyerFeeBps,
		SellerFeeBps: info.SellerFeeBps,
		FeeRecipient: info.FeeRecipient.Hex(),
	}, nil
}

func (h *marketHandler) QuoteOrder(
	ctx context.Context, req *api.QuoteOrderRequest,
) (*api.QuoteOrderResponse, error) {
	key, err := parseOrderKey(&api.OrderKey{
		Asset: req.Asset, UnitId: req.UnitId, Owner: req.Owner,
	})
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	price, err := parseAmount(req.PricePerUnit, "price per unit")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	quote, err := h.svc.QuoteOrder(ctx, application.QuoteRequest{
		Asset:         key.asset,
		UnitId:        key.unitId,
		Owner:         key.owner,
		PricePerUnit:  price,
		OfferedAmount: req.OfferedAmount,
	})
	if err != nil {
		return nil, err
	}
	return &api.QuoteOrderResponse{
		Nonce:       quote.Nonce,
		Filled:      quote.Filled,
		Remaining:   quote.Remaining,
		Digest:      quote.Digest.Hex(),
		SigningHash: quote.SigningHash.Hex(),
	}, nil
}

func (h *marketHandler) Buy(ctx context.Context, req *api.BuyRequest) (*api.BuyResponse, error) {
	buyReq, err := parseBuyRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	s, err := h.svc.Buy(ctx, *buyReq)
	if err != nil {
		return nil, err
	}
	return &api.BuyResponse{Settlement: settlement(*s).toProto()}, nil
}

func (h *marketHandler) GetNonce(
	ctx context.Context, req *api.GetNonceRequest,
) (*api.GetNonceResponse, error) {
	key, err := parseOrderKey(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	nonce, err := h.svc.GetNonce(ctx, key.asset, key.unitId, key.owner)
	if err != nil {
		return nil, err
	}
	return &api.GetNonceResponse{Nonce: nonce}, nil
}

func (h *marketHandler) GetFillState(
	ctx context.Context, req *api.GetFillStateRequest,
) (*api.GetFillStateResponse, error) {
	key, err := parseOrderKey(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	state, err := h.svc.GetFillState(ctx, key.asset, key.unitId, key.owner)
	if err != nil {
		return nil, err
	}
	return &api.GetFillStateResponse{Nonce: state.Nonce, Filled: state.Filled}, nil
}

func (h *marketHandler) GetSettlement(
	ctx context.Context, req *api.GetSettlementRequest,
) (*api.GetSettlementResponse, error) {
	if len(req.Id) <= 0 {
		return nil, status.Error(codes.InvalidArgument, "missing settlement id")
	}
	s, err := h.svc.GetSettlement(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &api.GetSettlementResponse{Settlement: settlement(*s).toProto()}, nil
}

func (h *marketHandler) ListSettlements(
	ctx context.Context, req *api.ListSettlementsRequest,
) (*api.ListSettlementsResponse, error) {
	asset, err := parseAddress(req.Asset, "asset")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	unitId, err := parseUnitId(req.UnitId)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	list, err := h.svc.ListSettlements(ctx, asset, unitId)
	if err != nil {
		return nil, err
	}
	return &api.ListSettlementsResponse{Settlements: settlementList(list).toProto()}, nil
}

func (h *marketHandler) Mint(ctx context.Context, req *api.MintRequest) (*api.MintResponse, error) {
	mintReq, err := parseMintRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	unit, err := h.svc.Mint(ctx, *mintReq)
	if err != nil {
		return nil, err
	}
	return &api.MintResponse{Unit: unitClass(*unit).toProto()}, nil
}

func (h *marketHandler) GetUnitClass(
	ctx context.Context, req *api.GetUnitClassRequest,
) (*api.GetUnitClassResponse, error) {
	asset, err := parseAddress(req.Asset, "asset")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	unitId, err := parseUnitId(req.UnitId)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	unit, err := h.svc.GetUnitClass(ctx, asset, unitId)
	if err != nil {
		return nil, err
	}
	return &api.GetUnitClassResponse{Unit: unitClass(*unit).toProto()}, nil
}

func (h *marketHandler) SetApprovalForAll(
	ctx context.Context, req *api.SetApprovalForAllRequest,
) (*api.SetApprovalForAllResponse, error) {
	approval, err := parseApprovalRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := h.svc.SetApprovalForAll(ctx, *approval); err != nil {
		return nil, err
	}
	return &api.SetApprovalForAllResponse{}, nil
}

func (h *marketHandler) GetApprovalNonce(
	ctx context.Context, req *api.GetApprovalNonceRequest,
) (*api.GetApprovalNonceResponse, error) {
	owner, err := parseAddress(req.Owner, "owner")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	nonce, err := h.svc.GetApprovalNonce(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &api.GetApprovalNonceResponse{Nonce: nonce}, nil
}

func (h *marketHandler) GetUnitBalance(
	ctx context.Context, req *api.GetUnitBalanceRequest,
) (*api.GetUnitBalanceResponse, error) {
	key, err := parseOrderKey(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	balance, err := h.svc.GetUnitBalance(ctx, key.asset, key.unitId, key.owner)
	if err != nil {
		return nil, err
	}
	return &api.GetUnitBalanceResponse{Balance: balance}, nil
}

func (h *marketHandler) GetBalance(
	ctx context.Context, req *api.GetBalanceRequest,
) (*api.GetBalanceResponse, error) {
	addr, err := parseAddress(req.Address, "address")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	balance, err := h.svc.GetBalance(ctx, addr)
	if err != nil {
		return nil, err
	}
	return &api.GetBalanceResponse{Balance: bigIntString(balance)}, nil
}
