package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// TestSetSuppressed tests the suppressed gauge toggles
// TestSetSuppressed 测试抑制状态指标的切换
func TestSetSuppressed(t *testing.T) {
	SetSuppressed("metrics_test", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(SinkSuppressed.WithLabelValues("metrics_test")))

	SetSuppressed("metrics_test", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(SinkSuppressed.WithLabelValues("metrics_test")))
}

// TestCounters tests counters are registered per collection
// TestCounters 测试按集合注册的计数器
func TestCounters(t *testing.T) {
	EventsAppended.WithLabelValues("metrics_test").Inc()
	EventsSuppressed.WithLabelValues("metrics_test").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(EventsAppended.WithLabelValues("metrics_test")))
	assert.Equal(t, 2.0, testutil.ToFloat64(EventsSuppressed.WithLabelValues("metrics_test")))
	assert.Equal(t, 0.0, testutil.ToFloat64(EventsFailed.WithLabelValues("metrics_test")))
}
