package ledger

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opLoad   = "load"
	opAdd    = "add"
	opRemove = "remove"
)

var histogramBackendCallTime = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "expense_tracker",
		Subsystem: "backend",
		Name:      "histogram_call_time_seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
	},
	[]string{"operation", "error"},
)

func observeBackendCall(op string, elapsed time.Duration, err bool) {
	histogramBackendCallTime.
		WithLabelValues(op, strconv.FormatBool(err)).
		Observe(elapsed.Seconds())
}
