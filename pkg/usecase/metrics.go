package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	changesetResultApplied  = "applied"
	changesetResultRejected = "rejected"
)

var changesetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gridcell_changesets_total",
		Help: "Number of cell changesets by field type and result.",
	},
	[]string{"field_type", "result"},
)
