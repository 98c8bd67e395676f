package llm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsObserver records LLM calls as Prometheus metrics.
type MetricsObserver struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsObserver creates the LLM metrics and registers them with reg.
func NewMetricsObserver(namespace string, reg prometheus.Registerer) (*MetricsObserver, error) {
	calls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "Total number of LLM calls by task and outcome",
		},
		[]string{"task", "provider", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_call_duration_seconds",
			Help:      "LLM call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"task", "provider"},
	)

	for _, c := range []prometheus.Collector{calls, duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &MetricsObserver{calls: calls, duration: duration}, nil
}

func (m *MetricsObserver) OnCallComplete(event LLMCallEvent) {
	status := "ok"
	if !event.Success {
		status = event.ErrorCode
	}
	m.calls.WithLabelValues(string(event.Task), string(event.Provider), status).Inc()
	m.duration.WithLabelValues(string(event.Task), string(event.Provider)).
		Observe((time.Duration(event.LatencyMs) * time.Millisecond).Seconds())
}
