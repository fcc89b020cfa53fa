package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_requests_total",
		Help: "Chat requests received",
	})

	ChatErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_errors_total",
		Help: "Chat pipeline errors by stage",
	}, []string{"stage"})

	CompletionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chat_completion_duration_seconds",
		Help:    "Upstream completion round-trip latency",
		Buckets: []float64{0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
	})
)
