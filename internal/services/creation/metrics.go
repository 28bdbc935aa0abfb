package creation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusOK    = "ok"
	statusError = "error"
	statusPanic = "panic"
)

var (
	previewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creation_previews_total",
			Help: "Total number of preview builds by status.",
		},
		[]string{"status"},
	)

	previewDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "creation_preview_duration_seconds",
		Help:    "Time spent building one preview.",
		Buckets: prometheus.DefBuckets,
	})

	pendingChoices = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "creation_pending_choices",
		Help:    "Number of pending choices returned per successful preview.",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	})
)
