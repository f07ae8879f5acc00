package accessibility

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	savesTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "accessibility_saves_total",
		Help: "Number of saved accessibility settings records, by persistence tier.",
	}, []string{"tier"})

	resetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "accessibility_resets_total",
		Help: "Number of accessibility settings resets, by persistence tier.",
	}, []string{"tier"})
)
