package nudge

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	NudgeSelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nudge_selections_total",
			Help: "Count of nudge arm selections by nudge type.",
		},
		[]string{"type"},
	)

	NudgeInteractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nudge_interactions_total",
			Help: "Count of recorded nudge interactions by nudge type and acceptance.",
		},
		[]string{"type", "accepted"},
	)
)

func init() {
	prometheus.MustRegister(NudgeSelectionsTotal, NudgeInteractionsTotal)
}
