package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Chat request outcomes.
const (
	OutcomeOK             = "ok"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeNotConfigured  = "not_configured"
	OutcomeUpstreamError  = "upstream_error"
)

// Metrics is safe to use through a nil pointer; every method is then a no-op.
type Metrics struct {
	chatRequests  *prometheus.CounterVec
	modelCalls    *prometheus.CounterVec
	modelDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		chatRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dolegal",
			Name:      "chat_requests_total",
			Help:      "Chat requests by outcome.",
		}, []string{"outcome"}),
		modelCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dolegal",
			Name:      "model_calls_total",
			Help:      "Generation calls to the language model by call kind and outcome.",
		}, []string{"call", "outcome"}),
		modelDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dolegal",
			Name:      "model_call_duration_seconds",
			Help:      "Latency of generation calls to the language model.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"call"}),
	}
	reg.MustRegister(m.chatRequests, m.modelCalls, m.modelDuration)
	return m
}

// NewRegistry returns a registry preloaded with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler exposes the registry in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func (m *Metrics) ObserveChatRequest(outcome string) {
	if m == nil {
		return
	}
	m.chatRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveModelCall(call string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeUpstreamError
	}
	m.modelCalls.WithLabelValues(call, outcome).Inc()
	m.modelDuration.WithLabelValues(call).Observe(elapsed.Seconds())
}
