package effects

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeApplied   = "applied"
	outcomeSkipped   = "skipped"
	outcomeUnhandled = "unhandled"
	outcomeError     = "error"
)

var effectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "effects_applied_total",
		Help: "Total number of effects processed by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)
