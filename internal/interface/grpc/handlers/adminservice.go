package handlers

import (
	"context"

	"github.com/arkade-os/offerd/internal/core/application"
	"github.com/arkade-os/offerd/pkg/api"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type adminHandler struct {
	adminService application.AdminService
}

func NewAdminHandler(adminService application.AdminService) api.AdminServiceServer {
	return &adminHandler{adminService}
}

func (a *adminHandler) GetFeeSettings(
	ctx context.Context, _ *api.GetFeeSettingsRequest,
) (*api.GetFeeSettingsResponse, error) {
	settings, err := a.adminService.GetFeeSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &api.GetFeeSettingsResponse{
		BuyerFeeBps:   settings.BuyerFeeBps,
		SellerFeeBps:  settings.SellerFeeBps,
		FeeRecipient:  settings.FeeRecipient.Hex(),
		Proxies:       addressList(settings.Proxies).toProto(),
		NonceOperator: settings.NonceOperator.Hex(),
	}, nil
}

func (a *adminHandler) SetRates(
	ctx context.Context, req *api.SetRatesRequest,
) (*api.SetRatesResponse, error) {
	if err := a.adminService.SetRates(ctx, req.BuyerFeeBps, req.SellerFeeBps); err != nil {
		return nil, err
	}
	return &api.SetRatesResponse{}, nil
}

func (a *adminHandler) SetFeeRecipient(
	ctx context.Context, req *api.SetFeeRecipientRequest,
) (*api.SetFeeRecipientResponse, error) {
	recipient, err := parseAddress(req.Recipient, "recipient")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := a.adminService.SetFeeRecipient(ctx, recipient); err != nil {
		return nil, err
	}
	return &api.SetFeeRecipientResponse{}, nil
}

func (a *adminHandler) AddProxy(
	ctx context.Context, req *api.ProxyRequest,
) (*api.ProxyResponse, error) {
	proxy, err := parseAddress(req.Proxy, "proxy")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := a.adminService.AddProxy(ctx, proxy); err != nil {
		return nil, err
	}
	return &api.ProxyResponse{}, nil
}

func (a *adminHandler) RemoveProxy(
	ctx context.Context, req *api.ProxyRequest,
) (*api.ProxyResponse, error) {
	proxy, err := parseAddress(req.Proxy, "proxy")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := a.adminService.RemoveProxy(ctx, proxy); err != nil {
		return nil, err
	}
	return &api.ProxyResponse{}, nil
}

func (a *adminHandler) SetOperator(
	ctx context.Context, req *api.SetOperatorRequest,
) (*api.SetOperatorResponse, error) {
	operator, err := parseAddress(req.Operator, "operator")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := a.adminService.SetOperator(ctx, operator); err != nil {
		return nil, err
	}
	return &api.SetOperatorResponse{}, nil
}

func (a *adminHandler) RegisterContract(
	ctx context.Context, req *api.RegisterContractRequest,
) (*api.RegisterContractResponse, error) {
	addr, err := parseAddress(req.Address, "address")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := a.adminService.RegisterContract(ctx, addr); err != nil {
		return nil, err
	}
	return &api.RegisterContractResponse{}, nil
}

func (a *adminHandler) SetRejectsPayments(
	ctx context.Context, req *api.SetRejectsPaymentsRequest,
) (*api.SetRejectsPaymentsResponse, error) {
	addr, err := parseAddress(req.Address, "address")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := a.adminService.SetRejectsPayments(ctx, addr, req.Rejects); err != nil {
		return nil, err
	}
	return &api.SetRejectsPaymentsResponse{}, nil
}

func (a *adminHandler) Deposit(
	ctx context.Context, req *api.DepositRequest,
) (*api.DepositResponse, error) {
	addr, err := parseAddress(req.Address, "address")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	amount, err := parseAmount(req.Amount, "amount")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	balance, err := a.adminService.Deposit(ctx, addr, amount)
	if err != nil {
		return nil, err
	}
	return &api.DepositResponse{Balance: bigIntString(balance)}, nil
}
