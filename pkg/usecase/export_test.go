package usecase

import "github.com/prometheus/client_golang/prometheus"

// ChangesetsTotal exposes the changeset counter for testing
func ChangesetsTotal() *prometheus.CounterVec {
	return changesetsTotal
}
