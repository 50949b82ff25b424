package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventbind",
		Name:      "resolutions_total",
		Help:      "Resource definition resolutions by type, role, and outcome.",
	}, []string{"type", "role", "outcome"})

	bindingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventbind",
		Name:      "bindings_total",
		Help:      "Producer and consumer handles constructed, by transport and role.",
	}, []string{"transport", "role"})
)
