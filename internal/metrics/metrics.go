package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_handled_total",
			Help: "Messages handled, by outcome (logged, answered, failed)",
		},
		[]string{"outcome"},
	)

	RowsAppended = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_rows_appended_total",
			Help: "Rows appended to the material log",
		},
	)

	Deliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_deliveries_total",
			Help: "Reply sends, by result (delivered, delivered_plain, failed)",
		},
		[]string{"result"},
	)

	ModelLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bot_model_call_duration_seconds",
			Help:    "Duration of model calls in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
	)
)
