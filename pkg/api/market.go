package api

import (
	"context"

	"google.golang.org/grpc"
)

const (
	MarketService_GetInfo_FullMethodName           = "/offerd.v1.MarketService/GetInfo"
	MarketService_QuoteOrder_FullMethodName        = "/offerd.v1.MarketService/QuoteOrder"
	MarketService_Buy_FullMethodName               = "/offerd.v1.MarketService/Buy"
	MarketService_GetNonce_FullMethodName          = "/offerd.v1.MarketService/GetNonce"
	MarketService_GetFillState_FullMethodName      = "/offerd.v1.MarketService/GetFillState"
	MarketService_GetSettlement_FullMethodName     = "/offerd.v1.MarketService/GetSettlement"
	MarketService_ListSettlements_FullMethodName   = "/offerd.v1.MarketService/ListSettlements"
	MarketService_Mint_FullMethodName              = "/offerd.v1.MarketService/Mint"
	MarketService_GetUnitClass_FullMethodName      = "/offerd.v1.MarketService/GetUnitClass"
	MarketService_SetApprovalForAll_FullMethodName = "/offerd.v1.MarketService/SetApprovalForAll"
	MarketService_GetUnitBalance_FullMethodName    = "/offerd.v1.MarketService/GetUnitBalance"
	MarketService_GetBalance_FullMethodName        = "/offerd.v1.MarketService/GetBalance"
	MarketService_GetApprovalNonce_FullMethodName  = "/offerd.v1.MarketService/GetApprovalNonce"
)

type MarketServiceServer interface {
	GetInfo(context.Context, *GetInfoRequest) (*GetInfoResponse, error)
	QuoteOrder(context.Context, *QuoteOrderRequest) (*QuoteOrderResponse, error)
	Buy(context.Context, *BuyRequest) (*BuyResponse, error)
	GetNonce(context.Context, *GetNonceRequest) (*GetNonceResponse, error)
	GetFillState(context.Context, *GetFillStateRequest) (*GetFillStateResponse, error)
	GetSettlement(context.Context, *GetSettlementRequest) (*GetSettlementResponse, error)
	ListSettlements(context.Context, *ListSettlementsRequest) (*ListSettlementsResponse, error)
	Mint(context.Context, *MintRequest) (*MintResponse, error)
	GetUnitClass(context.Context, *GetUnitClassRequest) (*GetUnitClassResponse, error)
	SetApprovalForAll(
		context.Context, *SetApprovalForAllRequest,
	) (*SetApprovalForAllResponse, error)
	GetUnitBalance(context.Context, *GetUnitBalanceRequest) (*GetUnitBalanceResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	GetApprovalNonce(
		context.Context, *GetApprovalNonceRequest,
	) (*GetApprovalNonceResponse, error)
}

func RegisterMarketServiceServer(s grpc.ServiceRegistrar, srv MarketServiceServer) {
	s.RegisterService(&MarketService_ServiceDesc, srv)
}

var MarketService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "offerd.v1.MarketService",
	HandlerType: (*MarketServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetInfo",
			Handler: unaryHandler(
				MarketService_GetInfo_FullMethodName, MarketServiceServer.GetInfo,
			),
		},
		{
			MethodName: "QuoteOrder",
			Handler: unaryHandler(
				MarketService_QuoteOrder_FullMethodName, MarketServiceServer.QuoteOrder,
			),
		},
		{
			MethodName: "Buy",
			Handler:    unaryHandler(MarketService_Buy_FullMethodName, MarketServiceServer.Buy),
		},
		{
			MethodName: "GetNonce",
			Handler: unaryHandler(
				MarketService_GetNonce_FullMethodName, MarketServiceServer.GetNonce,
			),
		},
		{
			MethodName: "GetFillState",
			Handler: unaryHandler(
				MarketService_GetFillState_FullMethodName, MarketServiceServer.GetFillState,
			),
		},
		{
			MethodName: "GetSettlement",
			Handler: unaryHandler(
				MarketService_GetSettlement_FullMethodName, MarketServiceServer.GetSettlement,
			),
		},
		{
			MethodName: "ListSettlements",
			Handler: unaryHandler(
				MarketService_ListSettlements_FullMethodName, MarketServiceServer.ListSettlements,
			),
		},
		{
			MethodName: "Mint",
			Handler:    unaryHandler(MarketService_Mint_FullMethodName, MarketServiceServer.Mint),
		},
		{
			MethodName: "GetUnitClass",
			Handler: unaryHandler(
				MarketService_GetUnitClass_FullMethodName, MarketServiceServer.GetUnitClass,
			),
		},
		{
			MethodName: "SetApprovalForAll",
			Handler: unaryHandler(
				MarketService_SetApprovalForAll_FullMethodName,
				MarketServiceServer.SetApprovalForAll,
			),
		},
		{
			MethodName: "GetUnitBalance",
			Handler: unaryHandler(
				MarketService_GetUnitBalance_FullMethodName, MarketServiceServer.GetUnitBalance,
			),
		},
		{
			MethodName: "GetBalance",
			Handler: unaryHandler(
				MarketService_GetBalance_FullMethodName, MarketServiceServer.GetBalance,
			),
		},
		{
			MethodName: "GetApprovalNonce",
			Handler: unaryHandler(
				MarketService_GetApprovalNonce_FullMethodName,
				MarketServiceServer.GetApprovalNonce,
			),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "offerd/v1/market.proto",
}

type MarketServiceClient interface {
	GetInfo(ctx context.Context, in *GetInfoRequest, opts ...grpc.CallOption) (*GetInfoResponse, error)
	QuoteOrder(
		ctx context.Context, in *QuoteOrderRequest, opts ...grpc.CallOption,
	) (*QuoteOrderResponse, error)
	Buy(ctx context.Context, in *BuyRequest, opts ...grpc.CallOption) (*BuyResponse, error)
	GetNonce(
		ctx context.Context, in *GetNonceRequest, opts ...grpc.CallOption,
	) (*GetNonceResponse, error)
	GetFillState(
		ctx context.Context, in *GetFillStateRequest, opts ...grpc.CallOption,
	) (*GetFillStateResponse, error)
	GetSettlement(
		ctx context.Context, in *GetSettlementRequest, opts ...grpc.CallOption,
	) (*GetSettlementResponse, error)
	ListSettlements(
		ctx context.Context, in *ListSettlementsRequest, opts ...grpc.CallOption,
	) (*ListSettlementsResponse, error)
	Mint(ctx context.Context, in *MintRequest, opts ...grpc.CallOption) (*MintResponse, error)
	GetUnitClass(
		ctx context.Context, in *GetUnitClassRequest, opts ...grpc.CallOption,
	) (*GetUnitClassResponse, error)
	SetApprovalForAll(
		ctx context.Context, in *SetApprovalForAllRequest, opts ...grpc.CallOption,
	) (*SetApprovalForAllResponse, error)
	GetUnitBalance(
		ctx context.Context, in *GetUnitBalanceRequest, opts ...grpc.CallOption,
	) (*GetUnitBalanceResponse, error)
	GetBalance(
		ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption,
	) (*GetBalanceResponse, error)
	GetApprovalNonce(
		ctx context.Context, in *GetApprovalNonceRequest, opts ...grpc.CallOption,
	) (*GetApprovalNonceResponse, error)
}

type marketServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMarketServiceClient(cc grpc.ClientConnInterface) MarketServiceClient {
	return &marketServiceClient{cc}
}

func (c *marketServiceClient) GetInfo(
	ctx context.Context, in *GetInfoRequest, opts ...grpc.CallOption,
) (*GetInfoResponse, error) {
	return invoke[GetInfoResponse](ctx, c.cc, MarketService_GetInfo_FullMethodName, in, opts...)
}

func (c *marketServiceClient) QuoteOrder(
	ctx context.Context, in *QuoteOrderRequest, opts ...grpc.CallOption,
) (*QuoteOrderResponse, error) {
	return invoke[QuoteOrderResponse](
		ctx, c.cc, MarketService_QuoteOrder_FullMethodName, in, opts...,
	)
}

func (c *marketServiceClient) Buy(
	ctx context.Context, in *BuyRequest, opts ...grpc.CallOption,
) (*BuyResponse, error) {
	return invoke[BuyResponse](ctx, c.cc, MarketService_Buy_FullMethodName, in, opts...)
}

func (c *marketServiceClient) GetNonce(
	ctx context.Context, in *GetNonceRequest, opts ...grpc.CallOption,
) (*GetNonceResponse, error) {
	return invoke[GetNonceResponse](ctx, c.cc, MarketService_GetNonce_FullMethodName, in, opts...)
}

func (c *marketServiceClient) GetFillState(
	ctx context.Context, in *GetFillStateRequest, opts ...grpc.CallOption,
) (*GetFillStateResponse, error) {
	return invoke[GetFillStateResponse](
		ctx, c.cc, MarketService_GetFillState_FullMethodName, in, opts...,
	)
}

func (c *marketServiceClient) GetSettlement(
	ctx context.Context, in *GetSettlementRequest, opts ...grpc.CallOption,
) (*GetSettlementResponse, error) {
	return invoke[GetSettlementResponse](
		ctx, c.cc, MarketService_GetSettlement_FullMethodName, in, opts...,
	)
}

func (c *marketServiceClient) ListSettlements(
	ctx context.Context, in *ListSettlementsRequest, opts ...grpc.CallOption,
) (*ListSettlementsResponse, error) {
	return invoke[ListSettlementsResponse](
		ctx, c.cc, MarketService_ListSettlements_FullMethodName, in, opts...,
	)
}

func (c *marketServiceClient) Mint(
	ctx context.Context, in *MintRequest, opts ...grpc.CallOption,
) (*MintResponse, error) {
	return invoke[MintResponse](ctx, c.cc, MarketService_Mint_FullMethodName, in, opts...)
}

func (c *marketServiceClient) GetUnitClass(
	ctx context.Context, in *GetUnitClassRequest, opts ...grpc.CallOption,
) (*GetUnitClassResponse, error) {
	return invoke[GetUnitClassResponse](
		ctx, c.cc, MarketService_GetUnitClass_FullMethodName, in, opts...,
	)
}

func (c *marketServiceClient) SetApprovalForAll(
	ctx context.Context, in *SetApprovalForAllRequest, opts ...grpc.CallOption,
) (*SetApprovalForAllResponse, error) {
	return invoke[SetApprovalForAllResponse](
		ctx, c.cc, MarketService_SetApprovalForAll_FullMethodName, in, opts...,
	)
}

func (c *marketServiceClient) GetUnitBalance(
	ctx context.Context, in *GetUnitBalanceRequest, opts ...grpc.CallOption,
) (*GetUnitBalanceResponse, error) {
	return invoke[GetUnitBalanceResponse](
		ctx, c.cc, MarketService_GetUnitBalance_FullMethodName, in, opts...,
	)
}

func (c *marketServiceClient) GetBalance(
	ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption,
) (*GetBalanceResponse, error) {
	return invoke[GetBalanceResponse](
		ctx, c.cc, MarketService_GetBalance_FullMethodName, in, opts...,
	)
}

func (c *marketServiceClient) GetApprovalNonce(
	ctx context.Context, in *GetApprovalNonceRequest, opts ...grpc.CallOption,
) (*GetApprovalNonceResponse, error) {
	return invoke[GetApprovalNonceResponse](
		ctx, c.cc, MarketService_GetApprovalNonce_FullMethodName, in, opts...,
	)
}
