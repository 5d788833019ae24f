package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	allocationOutcome = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tablebook",
			Name:      "allocation_outcome_total",
			Help:      "Count of allocator outcomes by seating path.",
		},
		[]string{"outcome"},
	)

	writeConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tablebook",
			Name:      "booking_write_conflict_total",
			Help:      "Count of reservations lost to the commit-time exclusion re-check.",
		},
	)

	allocatorDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tablebook",
			Name:      "allocator_duration_seconds",
			Help:      "Latency of a full allocator pass for one interval.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Allocator outcome labels.
const (
	OutcomeSingleTable = "single_table"
	OutcomeGroup       = "group"
	OutcomePrivateRoom = "private_room"
	OutcomeRejected    = "rejected"
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(allocationOutcome, writeConflicts, allocatorDuration)
	})
}

func IncAllocationOutcome(outcome string) {
	allocationOutcome.WithLabelValues(outcome).Inc()
}

func IncWriteConflict() {
	writeConflicts.Inc()
}

func ObserveAllocatorDuration(d time.Duration) {
	allocatorDuration.Observe(d.Seconds())
}
