package interceptors

import (
	"context"
	"errors"

	offerderrors "github.com/arkade-os/offerd/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// errorConverter lets typed errors through, they carry their own grpc
// status. Status errors are kept as well, anything else is an internal
// error whose cause is not leaked to the caller.
func errorConverter(
	ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler,
) (any, error) {
	resp, err := handler(ctx, req)
	if err == nil {
		return resp, nil
	}

	var structuredErr offerderrors.Error
	if errors.As(err, &structuredErr) {
		return nil, structuredErr
	}
	if _, ok := status.FromError(err); ok {
		return nil, err
	}
	return nil, offerderrors.INTERNAL_ERROR.Wrap(err).
		WithMetadata(map[string]any{"method": info.FullMethod})
}
