package interceptors

import (
	"context"
	"errors"

	offerderrors "github.com/arkade-os/offerd/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

func unaryLogger(
	ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler,
) (any, error) {
	log.Debugf("gRPC method: %s", info.FullMethod)
	resp, err := handler(ctx, req)
	if err != nil {
		var structuredErr offerderrors.Error
		if errors.As(err, &structuredErr) && structuredErr.Code() == 0 {
			structuredErr.Log().WithContext(ctx).Error(structuredErr.Error())
		} else {
			log.WithField("method", info.FullMethod).Debug(err)
		}
	}
	return resp, err
}

func streamLogger(
	srv any, stream grpc.ServerStream,
	info *grpc.StreamServerInfo, handler grpc.StreamHandler,
) error {
	log.Debugf("gRPC method: %s", info.FullMethod)
	return handler(srv, stream)
}
