package api

import (
	"context"

	"google.golang.org/grpc"
)

const (
	AdminService_GetFeeSettings_FullMethodName     = "/offerd.v1.AdminService/GetFeeSettings"
	AdminService_SetRates_FullMethodName           = "/offerd.v1.AdminService/SetRates"
	AdminService_SetFeeRecipient_FullMethodName    = "/offerd.v1.AdminService/SetFeeRecipient"
	AdminService_AddProxy_FullMethodName           = "/offerd.v1.AdminService/AddProxy"
	AdminService_RemoveProxy_FullMethodName        = "/offerd.v1.AdminService/RemoveProxy"
	AdminService_SetOperator_FullMethodName        = "/offerd.v1.AdminService/SetOperator"
	AdminService_RegisterContract_FullMethodName   = "/offerd.v1.AdminService/RegisterContract"
	AdminService_SetRejectsPayments_FullMethodName = "/offerd.v1.AdminService/SetRejectsPayments"
	AdminService_Deposit_FullMethodName            = "/offerd.v1.AdminService/Deposit"
)

type AdminServiceServer interface {
	GetFeeSettings(context.Context, *GetFeeSettingsRequest) (*GetFeeSettingsResponse, error)
	SetRates(context.Context, *SetRatesRequest) (*SetRatesResponse, error)
	SetFeeRecipient(context.Context, *SetFeeRecipientRequest) (*SetFeeRecipientResponse, error)
	AddProxy(context.Context, *ProxyRequest) (*ProxyResponse, error)
	RemoveProxy(context.Context, *ProxyRequest) (*ProxyResponse, error)
	SetOperator(context.Context, *SetOperatorRequest) (*SetOperatorResponse, error)
	RegisterContract(context.Context, *RegisterContractRequest) (*RegisterContractResponse, error)
	SetRejectsPayments(
		context.Context, *SetRejectsPaymentsRequest,
	) (*SetRejectsPaymentsResponse, error)
	Deposit(context.Context, *DepositRequest) (*DepositResponse, error)
}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminService_ServiceDesc, srv)
}

var AdminService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "offerd.v1.AdminService",
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetFeeSettings",
			Handler: unaryHandler(
				AdminService_GetFeeSettings_FullMethodName, AdminServiceServer.GetFeeSettings,
			),
		},
		{
			MethodName: "SetRates",
			Handler: unaryHandler(
				AdminService_SetRates_FullMethodName, AdminServiceServer.SetRates,
			),
		},
		{
			MethodName: "SetFeeRecipient",
			Handler: unaryHandler(
				AdminService_SetFeeRecipient_FullMethodName, AdminServiceServer.SetFeeRecipient,
			),
		},
		{
			MethodName: "AddProxy",
			Handler: unaryHandler(
				AdminService_AddProxy_FullMethodName, AdminServiceServer.AddProxy,
			),
		},
		{
			MethodName: "RemoveProxy",
			Handler: unaryHandler(
				AdminService_RemoveProxy_FullMethodName, AdminServiceServer.RemoveProxy,
			),
		},
		{
			MethodName: "SetOperator",
			Handler: unaryHandler(
				AdminService_SetOperator_FullMethodName, AdminServiceServer.SetOperator,
			),
		},
		{
			MethodName: "RegisterContract",
			Handler: unaryHandler(
				AdminService_RegisterContract_FullMethodName, AdminServiceServer.RegisterContract,
			),
		},
		{
			MethodName: "SetRejectsPayments",
			Handler: unaryHandler(
				AdminService_SetRejectsPayments_FullMethodName,
				AdminServiceServer.SetRejectsPayments,
			),
		},
		{
			MethodName: "Deposit",
			Handler: unaryHandler(
				AdminService_Deposit_FullMethodName, AdminServiceServer.Deposit,
			),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "offerd/v1/admin.proto",
}

type AdminServiceClient interface {
	GetFeeSettings(
		ctx context.Context, in *GetFeeSettingsRequest, opts ...grpc.CallOption,
	) (*GetFeeSettingsResponse, error)
	SetRates(
		ctx context.Context, in *SetRatesRequest, opts ...grpc.CallOption,
	) (*SetRatesResponse, error)
	SetFeeRecipient(
		ctx context.Context, in *SetFeeRecipientRequest, opts ...grpc.CallOption,
	) (*SetFeeRecipientResponse, error)
	AddProxy(ctx context.Context, in *ProxyRequest, opts ...grpc.CallOption) (*ProxyResponse, error)
	RemoveProxy(
		ctx context.Context, in *ProxyRequest, opts ...grpc.CallOption,
	) (*ProxyResponse, error)
	SetOperator(
		ctx context.Context, in *SetOperatorRequest, opts ...grpc.CallOption,
	) (*SetOperatorResponse, error)
	RegisterContract(
		ctx context.Context, in *RegisterContractRequest, opts ...grpc.CallOption,
	) (*RegisterContractResponse, error)
	SetRejectsPayments(
		ctx context.Context, in *SetRejectsPaymentsRequest, opts ...grpc.CallOption,
	) (*SetRejectsPaymentsResponse, error)
	Deposit(
		ctx context.Context, in *DepositRequest, opts ...grpc.CallOption,
	) (*DepositResponse, error)
}

type adminServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminServiceClient(cc grpc.ClientConnInterface) AdminServiceClient {
	return &adminServiceClient{cc}
}

func (c *adminServiceClient) GetFeeSettings(
	ctx context.Context, in *GetFeeSettingsRequest, opts ...grpc.CallOption,
) (*GetFeeSettingsResponse, error) {
	return invoke[GetFeeSettingsResponse](
		ctx, c.cc, AdminService_GetFeeSettings_FullMethodName, in, opts...,
	)
}

func (c *adminServiceClient) SetRates(
	ctx context.Context, in *SetRatesRequest, opts ...grpc.CallOption,
) (*SetRatesResponse, error) {
	return invoke[SetRatesResponse](ctx, c.cc, AdminService_SetRates_FullMethodName, in, opts...)
}

func (c *adminServiceClient) SetFeeRecipient(
	ctx context.Context, in *SetFeeRecipientRequest, opts ...grpc.CallOption,
) (*SetFeeRecipientResponse, error) {
	return invoke[SetFeeRecipientResponse](
		ctx, c.cc, AdminService_SetFeeRecipient_FullMethodName, in, opts...,
	)
}

func (c *adminServiceClient) AddProxy(
	ctx context.Context, in *ProxyRequest, opts ...grpc.CallOption,
) (*ProxyResponse, error) {
	return invoke[ProxyResponse](ctx, c.cc, AdminService_AddProxy_FullMethodName, in, opts...)
}

func (c *adminServiceClient) RemoveProxy(
	ctx context.Context, in *ProxyRequest, opts ...grpc.CallOption,
) (*ProxyResponse, error) {
	return invoke[ProxyResponse](ctx, c.cc, AdminService_RemoveProxy_FullMethodName, in, opts...)
}

func (c *adminServiceClient) SetOperator(
	ctx context.Context, in *SetOperatorRequest, opts ...grpc.CallOption,
) (*SetOperatorResponse, error) {
	return invoke[SetOperatorResponse](
		ctx, c.cc, AdminService_SetOperator_FullMethodName, in, opts...,
	)
}

func (c *adminServiceClient) RegisterContract(
	ctx context.Context, in *RegisterContractRequest, opts ...grpc.CallOption,
) (*RegisterContractResponse, error) {
	return invoke[RegisterContractResponse](
		ctx, c.cc, AdminService_RegisterContract_FullMethodName, in, opts...,
	)
}

func (c *adminServiceClient) SetRejectsPayments(
	ctx context.Context, in *SetRejectsPaymentsRequest, opts ...grpc.CallOption,
) (*SetRejectsPaymentsResponse, error) {
	return invoke[SetRejectsPaymentsResponse](
		ctx, c.cc, AdminService_SetRejectsPayments_FullMethodName, in, opts...,
	)
}

func (c *adminServiceClient) Deposit(
	ctx context.Context, in *DepositRequest, opts ...grpc.CallOption,
) (*DepositResponse, error) {
	return invoke[DepositResponse](ctx, c.cc, AdminService_Deposit_FullMethodName, in, opts...)
}
