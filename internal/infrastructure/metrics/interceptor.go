package metrics

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// UnaryServerInterceptor returns a gRPC interceptor that records metrics for each request.
func UnaryServerInterceptor(collector *Collector, exporter *PrometheusExporter) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		method := info.FullMethod

		collector.RecordRequest(method)
		if exporter != nil {
			exporter.RecordRequest(method)
		}

		resp, err := handler(ctx, req)

		duration := time.Since(start).Seconds()
		collector.RecordDuration(method, duration)
		if exporter != nil {
			exporter.RecordDuration(method, duration)
		}

		if err != nil {
			collector.RecordError(method)
			if exporter != nil {
				exporter.RecordError(method)
			}
		}

		return resp, err
	}
}

// Recorder forwards row metrics to the collector and, when set, the Prometheus exporter.
type Recorder struct {
	Collector *Collector
	Exporter  *PrometheusExporter
}

// RecordAffected records the affected row count of an update or delete.
func (r *Recorder) RecordAffected(operation string, affected int64) {
	if r.Collector != nil {
		r.Collector.RecordAffected(operation, affected)
	}
	if r.Exporter != nil {
		r.Exporter.RecordAffected(operation, affected)
	}
}
