package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Delivery metrics
	EventsAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongolog_events_appended_total",
			Help: "Total log events inserted into the collection",
		},
		[]string{"collection"},
	)
	EventsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongolog_events_failed_total",
			Help: "Total insert attempts that failed",
		},
		[]string{"collection"},
	)

	// Events dropped without an insert attempt during the cool-down window
	EventsSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongolog_events_suppressed_total",
			Help: "Total log events dropped while the sink was suppressed",
		},
		[]string{"collection"},
	)

	// Events rejected by threshold or filter expression
	EventsFiltered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongolog_events_filtered_total",
			Help: "Total log events rejected by the appender threshold or filter",
		},
		[]string{"collection"},
	)

	SinkSuppressed = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mongolog_sink_suppressed",
			Help: "1 while the sink is in the suppressed state, 0 otherwise",
		},
		[]string{"collection"},
	)
)

// SetSuppressed updates the suppressed gauge for a collection.
// SetSuppressed 更新集合的抑制状态指标。
func SetSuppressed(collection string, suppressed bool) {
	v := 0.0
	if suppressed {
		v = 1
	}
	SinkSuppressed.WithLabelValues(collection).Set(v)
}
