package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and the
// entity store mutations.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	mutationTotal   *prometheus.CounterVec
	invoiceCreated  prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	mutationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_mutations_total",
		Help: "Total number of entity store mutations by operation",
	}, []string{"operation"})

	invoiceCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "invoices_created_total",
		Help: "Total invoices synthesised by monthly generation runs",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, mutationTotal, invoiceCreated, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		mutationTotal:   mutationTotal,
		invoiceCreated:  invoiceCreated,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, fmt.Sprintf("%d", status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// IncMutation counts one store mutation by operation name.
func (m *MetricsService) IncMutation(operation string) {
	m.mutationTotal.WithLabelValues(operation).Inc()
}

// AddInvoicesCreated counts invoices produced by a generation run.
func (m *MetricsService) AddInvoicesCreated(n int) {
	if n > 0 {
		m.invoiceCreated.Add(float64(n))
	}
}
