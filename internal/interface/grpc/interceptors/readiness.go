package interceptors

import (
	"context"
	"strings"
	"sync/atomic"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	marketServiceMethodPrefix = "/offerd.v1.MarketService/"
	adminServiceMethodPrefix  = "/offerd.v1.AdminService/"

	marketServiceNotReadyMsg = "market service not ready: exchange not registered yet"
	adminServiceNotReadyMsg  = "admin service not ready: exchange not registered yet"
)

// ReadinessService holds back the market and admin calls until the app
// service registered the exchange as operator and fee proxy.
type ReadinessService struct {
	appStarted atomic.Bool
}

func NewReadinessService() *ReadinessService {
	return &ReadinessService{}
}

func (r *ReadinessService) MarkAppServiceStarted() {
	r.appStarted.Store(true)
}

func (r *ReadinessService) MarkAppServiceStopped() {
	r.appStarted.Store(false)
}

func (r *ReadinessService) IsReady() bool {
	return r != nil && r.appStarted.Load()
}

func (r *ReadinessService) Check(_ context.Context, fullMethod string) error {
	if r == nil || !isProtectedServiceMethod(fullMethod) {
		return nil
	}
	if !r.appStarted.Load() {
		return protectedServiceUnavailableErr(fullMethod)
	}
	return nil
}

func isProtectedServiceMethod(fullMethod string) bool {
	return strings.HasPrefix(fullMethod, marketServiceMethodPrefix) ||
		strings.HasPrefix(fullMethod, adminServiceMethodPrefix)
}

func protectedServiceUnavailableErr(fullMethod string) error {
	msg := marketServiceNotReadyMsg
	if strings.HasPrefix(fullMethod, adminServiceMethodPrefix) {
		msg = adminServiceNotReadyMsg
	}
	return status.Error(codes.Unavailable, msg)
}

func unaryReadinessHandler(readiness *ReadinessService) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context, req any,
		info *grpc.UnaryServerInfo, handler grpc.UnaryHandler,
	) (any, error) {
		if err := readiness.Check(ctx, info.FullMethod); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

func streamReadinessHandler(readiness *ReadinessService) grpc.StreamServerInterceptor {
	return func(
		srv any, stream grpc.ServerStream,
		info *grpc.StreamServerInfo, handler grpc.StreamHandler,
	) error {
		if err := readiness.Check(stream.Context(), info.FullMethod); err != nil {
			return err
		}
		return handler(srv, stream)
	}
}
