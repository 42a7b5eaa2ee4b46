package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/arkade-os/offerd/internal/interface/grpc/interceptors"
	"github.com/arkade-os/offerd/pkg/api"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// NewRestHandler serves the json api over plain http. Every call goes
// through the same interceptor as the grpc one. The admin routes are
// mounted only if adminSvc is not nil.
func NewRestHandler(
	marketSvc api.MarketServiceServer, adminSvc api.AdminServiceServer,
	interceptor grpc.UnaryServerInterceptor,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "SERVING"})
	})

	if marketSvc != nil {
		r.Route("/v1", func(r chi.Router) {
			mountMarketRoutes(r, marketSvc, interceptor)
		})
	}
	if adminSvc != nil {
		r.Route("/v1/admin", func(r chi.Router) {
			mountAdminRoutes(r, adminSvc, interceptor)
		})
	}
	return r
}

func mountMarketRoutes(
	r chi.Router, svc api.MarketServiceServer, interceptor grpc.UnaryServerInterceptor,
) {
	r.Get("/info", restCall(
		interceptor, api.MarketService_GetInfo_FullMethodName, noBody, svc.GetInfo,
	))
	r.Post("/order/quote", restCall(
		interceptor, api.MarketService_QuoteOrder_FullMethodName, jsonBody, svc.QuoteOrder,
	))
	r.Post("/order/buy", restCall(
		interceptor, api.MarketService_Buy_FullMethodName, jsonBody, svc.Buy,
	))
	r.Get("/nonce/{asset}/{unitId}/{owner}", restCall(
		interceptor, api.MarketService_GetNonce_FullMethodName, orderKeyParams, svc.GetNonce,
	))
	r.Get("/fill/{asset}/{unitId}/{owner}", restCall(
		interceptor, api.MarketService_GetFillState_FullMethodName, orderKeyParams,
		svc.GetFillState,
	))
	r.Get("/settlement/{id}", restCall(
		interceptor, api.MarketService_GetSettlement_FullMethodName,
		func(r *http.Request, req *api.GetSettlementRequest) error {
			req.Id = chi.URLParam(r, "id")
			return nil
		},
		svc.GetSettlement,
	))
	r.Get("/settlements/{asset}/{unitId}", restCall(
		interceptor, api.MarketService_ListSettlements_FullMethodName,
		func(r *http.Request, req *api.ListSettlementsRequest) error {
			req.Asset = chi.URLParam(r, "asset")
			req.UnitId = chi.URLParam(r, "unitId")
			return nil
		},
		svc.ListSettlements,
	))
	r.Post("/unit/mint", restCall(
		interceptor, api.MarketService_Mint_FullMethodName, jsonBody, svc.Mint,
	))
	r.Get("/unit/{asset}/{unitId}", restCall(
		interceptor, api.MarketService_GetUnitClass_FullMethodName,
		func(r *http.Request, req *api.GetUnitClassRequest) error {
			req.Asset = chi.URLParam(r, "asset")
			req.UnitId = chi.URLParam(r, "unitId")
			return nil
		},
		svc.GetUnitClass,
	))
	r.Get("/unit/{asset}/{unitId}/balance/{owner}", restCall(
		interceptor, api.MarketService_GetUnitBalance_FullMethodName, orderKeyParams,
		svc.GetUnitBalance,
	))
	r.Post("/approval", restCall(
		interceptor, api.MarketService_SetApprovalForAll_FullMethodName, jsonBody,
		svc.SetApprovalForAll,
	))
	r.Get("/approval/nonce/{owner}", restCall(
		interceptor, api.MarketService_GetApprovalNonce_FullMethodName,
		func(r *http.Request, req *api.GetApprovalNonceRequest) error {
			req.Owner = chi.URLParam(r, "owner")
			return nil
		},
		svc.GetApprovalNonce,
	))
	r.Get("/balance/{address}", restCall(
		interceptor, api.MarketService_GetBalance_FullMethodName,
		func(r *http.Request, req *api.GetBalanceRequest) error {
			req.Address = chi.URLParam(r, "address")
			return nil
		},
		svc.GetBalance,
	))
}

func mountAdminRoutes(
	r chi.Router, svc api.AdminServiceServer, interceptor grpc.UnaryServerInterceptor,
) {
	r.Get("/fees", restCall(
		interceptor, api.AdminService_GetFeeSettings_FullMethodName, noBody, svc.GetFeeSettings,
	))
	r.Post("/fees/rates", restCall(
		interceptor, api.AdminService_SetRates_FullMethodName, jsonBody, svc.SetRates,
	))
	r.Post("/fees/recipient", restCall(
		interceptor, api.AdminService_SetFeeRecipient_FullMethodName, jsonBody,
		svc.SetFeeRecipient,
	))
	r.Post("/proxy/add", restCall(
		interceptor, api.AdminService_AddProxy_FullMethodName, jsonBody, svc.AddProxy,
	))
	r.Post("/proxy/remove", restCall(
		interceptor, api.AdminService_RemoveProxy_FullMethodName, jsonBody, svc.RemoveProxy,
	))
	r.Post("/operator", restCall(
		interceptor, api.AdminService_SetOperator_FullMethodName, jsonBody, svc.SetOperator,
	))
	r.Post("/contract", restCall(
		interceptor, api.AdminService_RegisterContract_FullMethodName, jsonBody,
		svc.RegisterContract,
	))
	r.Post("/rejects-payments", restCall(
		interceptor, api.AdminService_SetRejectsPayments_FullMethodName, jsonBody,
		svc.SetRejectsPayments,
	))
	r.Post("/deposit", restCall(
		interceptor, api.AdminService_Deposit_FullMethodName, jsonBody, svc.Deposit,
	))
}

func restCall[Req, Resp any](
	interceptor grpc.UnaryServerInterceptor, fullMethod string,
	decode func(*http.Request, *Req) error,
	call func(context.Context, *Req) (*Resp, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := new(Req)
		if err := decode(r, req); err != nil {
			writeError(w, status.Error(codes.InvalidArgument, err.Error()))
			return
		}

		handler := func(ctx context.Context, req any) (any, error) {
			return call(ctx, req.(*Req))
		}
		ctx := metadata.NewIncomingContext(r.Context(), metadata.Pairs(
			interceptors.RequestIdKey, middleware.GetReqID(r.Context()),
		))
		var resp any
		var err error
		if interceptor != nil {
			info := &grpc.UnaryServerInfo{FullMethod: fullMethod}
			resp, err = interceptor(ctx, req, info, handler)
		} else {
			resp, err = handler(ctx, req)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func noBody[Req any](_ *http.Request, _ *Req) error {
	return nil
}

func jsonBody[Req any](r *http.Request, req *Req) error {
	if r.Body == nil || r.ContentLength == 0 {
		return fmt.Errorf("missing request body")
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return fmt.Errorf("invalid request body: %s", err)
	}
	return nil
}

func orderKeyParams(r *http.Request, req *api.OrderKey) error {
	req.Asset = chi.URLParam(r, "asset")
	req.UnitId = chi.URLParam(r, "unitId")
	req.Owner = chi.URLParam(r, "owner")
	return nil
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	st := status.Convert(err)
	resp := api.ErrorResponse{
		Code:    int32(st.Code()),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			resp.Name = info.GetReason()
			resp.Metadata = info.GetMetadata()
		}
	}
	writeJSON(w, httpStatusFromCode(st.Code()), resp)
}

func httpStatusFromCode(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.Aborted:
		return http.StatusConflict
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
