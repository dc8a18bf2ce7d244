package logging

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor logs every gRPC request with its status code and duration
// Server-side failures (Internal, DataLoss, Unavailable, Unknown) are logged at error level.
func UnaryServerInterceptor(logger *Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		attrs := []any{
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("duration", time.Since(start)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		switch code {
		case codes.OK:
			logger.DebugContext(ctx, "request handled", attrs...)
		case codes.Internal, codes.DataLoss, codes.Unavailable, codes.Unknown:
			logger.ErrorContext(ctx, "request failed", attrs...)
		default:
			logger.WarnContext(ctx, "request rejected", attrs...)
		}

		return resp, err
	}
}
