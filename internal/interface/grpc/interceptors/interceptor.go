package interceptors

import (
	middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"google.golang.org/grpc"
)

// UnaryInterceptor returns the chain applied to every unary call. The
// chain is also exposed as UnaryChain to let the rest handler share it.
func UnaryInterceptor(readiness *ReadinessService) grpc.ServerOption {
	return grpc.UnaryInterceptor(UnaryChain(readiness))
}

func UnaryChain(readiness *ReadinessService) grpc.UnaryServerInterceptor {
	return middleware.ChainUnaryServer(
		unaryPanicRecoveryInterceptor(),
		unaryLogger,
		unaryReadinessHandler(readiness),
		errorConverter,
	)
}

func StreamInterceptor(readiness *ReadinessService) grpc.ServerOption {
	return grpc.StreamInterceptor(
		middleware.ChainStreamServer(
			streamPanicRecoveryInterceptor(),
			streamLogger,
			streamReadinessHandler(readiness),
		),
	)
}
