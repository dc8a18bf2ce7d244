package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusExporter exports metrics to Prometheus format.
type PrometheusExporter struct {
	grpcRequests  *prometheus.CounterVec
	grpcDuration  *prometheus.HistogramVec
	grpcErrors    *prometheus.CounterVec
	rowsAffected  *prometheus.CounterVec
	notFoundCalls *prometheus.CounterVec
}

// NewPrometheusExporter creates a new Prometheus exporter registered with reg.
// Pass prometheus.DefaultRegisterer to expose the metrics on the default handler.
func NewPrometheusExporter(reg prometheus.Registerer) *PrometheusExporter {
	factory := promauto.With(reg)

	return &PrometheusExporter{
		grpcRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edurecords_grpc_requests_total",
				Help: "Total number of gRPC requests",
			},
			[]string{"method"},
		),
		grpcDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edurecords_grpc_request_duration_seconds",
				Help:    "Duration of gRPC requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"method"},
		),
		grpcErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edurecords_grpc_errors_total",
				Help: "Total number of gRPC errors",
			},
			[]string{"method"},
		),
		rowsAffected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edurecords_person_rows_affected_total",
				Help: "Total number of person rows changed by name-keyed updates and deletes",
			},
			[]string{"operation"},
		),
		notFoundCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edurecords_person_not_found_total",
				Help: "Total number of name-keyed updates and deletes that matched no row",
			},
			[]string{"operation"},
		),
	}
}

// RecordRequest records a request in Prometheus.
func (e *PrometheusExporter) RecordRequest(method string) {
	e.grpcRequests.WithLabelValues(method).Inc()
}

// RecordDuration records a duration in Prometheus.
func (e *PrometheusExporter) RecordDuration(method string, durationSeconds float64) {
	e.grpcDuration.WithLabelValues(method).Observe(durationSeconds)
}

// RecordError records an error in Prometheus.
func (e *PrometheusExporter) RecordError(method string) {
	e.grpcErrors.WithLabelValues(method).Inc()
}

// RecordAffected records the affected row count of an update or delete.
func (e *PrometheusExporter) RecordAffected(operation string, affected int64) {
	if affected <= 0 {
		e.notFoundCalls.WithLabelValues(operation).Inc()
		return
	}
	e.rowsAffected.WithLabelValues(operation).Add(float64(affected))
}
