package log

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const metadataKeyRequestID = "x-request-id"

// UnaryServerInterceptor returns a gRPC unary server interceptor that
// creates a child logger with request metadata and injects it into context.
// Client errors are logged at warn level, server errors at error level.
func UnaryServerInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()

		reqID := requestIDFromMD(ctx)
		child := logger.With().
			Str(FieldRequestID, reqID).
			Str(FieldGRPCMethod, info.FullMethod).
			Logger()

		ctx = WithRequestID(WithLogger(ctx, child), reqID)
		_ = grpc.SetHeader(ctx, metadata.Pairs(metadataKeyRequestID, reqID))

		resp, err := handler(ctx, req)

		code := status.Code(err)
		var evt *zerolog.Event
		switch code {
		case codes.OK:
			evt = child.Info()
		case codes.InvalidArgument, codes.NotFound, codes.ResourceExhausted:
			evt = child.Warn()
		default:
			evt = child.Error()
		}
		evt.Str(FieldGRPCCode, code.String()).
			Float64(FieldLatency, float64(time.Since(start).Milliseconds())).
			Err(err).
			Msg("unary call completed")

		return resp, err
	}
}

// OutgoingRequestID attaches id to outgoing gRPC metadata.
func OutgoingRequestID(ctx context.Context, id string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, metadataKeyRequestID, id)
}

func requestIDFromMD(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		vals := md.Get(metadataKeyRequestID)
		if len(vals) > 0 && vals[0] != "" {
			return vals[0]
		}
	}
	return NewRequestID()
}
