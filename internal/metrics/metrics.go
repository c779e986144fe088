package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordEntryDuration tracks the latency of entrant recording
	RecordEntryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "prizepacket_record_entry_duration_seconds",
			Help: "Duration of entrant recording requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
			},
		},
		[]string{"status"}, // recorded, duplicate or failed
	)

	// ReservationTotal counts inventory reservation outcomes
	ReservationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prizepacket_inventory_reservations_total",
			Help: "Inventory reservation attempts by outcome",
		},
		[]string{"outcome"}, // reserved, out_of_stock, released, clamped or failed
	)
)

// ObserveRecordEntry records the duration of one entrant recording attempt
func ObserveRecordEntry(status string, duration float64) {
	RecordEntryDuration.WithLabelValues(status).Observe(duration)
}

// CountReservation records one reservation or release outcome
func CountReservation(outcome string) {
	ReservationTotal.WithLabelValues(outcome).Inc()
}
