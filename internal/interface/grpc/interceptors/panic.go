package interceptors

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/arkade-os/offerd/pkg/errors"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// RequestIdKey is the incoming metadata key holding the id a caller
// assigned to its request. The rest handler fills it from X-Request-Id.
const RequestIdKey = "x-request-id"

func requestId(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(RequestIdKey); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return uuid.NewString()
}

// recoverCall logs a handler panic and returns the INTERNAL_ERROR sent back
// in its place. The request id is both logged and returned as metadata so a
// failed settlement can be matched with its stack trace.
func recoverCall(ctx context.Context, method string, r any) error {
	id := requestId(ctx)
	log.WithFields(log.Fields{
		"method":     method,
		"request_id": id,
		"panic":      fmt.Sprint(r),
		"stack":      string(debug.Stack()),
	}).Error("handler panicked")

	return errors.INTERNAL_ERROR.New("something went wrong").
		WithMetadata(map[string]any{"method": method, "request_id": id})
}

func unaryPanicRecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context, req any,
		info *grpc.UnaryServerInfo, handler grpc.UnaryHandler,
	) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				resp, err = nil, recoverCall(ctx, info.FullMethod, r)
			}
		}()
		return handler(ctx, req)
	}
}

func streamPanicRecoveryInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv any, stream grpc.ServerStream,
		info *grpc.StreamServerInfo, handler grpc.StreamHandler,
	) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recoverCall(stream.Context(), info.FullMethod, r)
			}
		}()
		return handler(srv, stream)
	}
}
