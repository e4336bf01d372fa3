package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — счётчики движка расписания
type Metrics struct {
	BookingAttempts *prometheus.CounterVec
	SlotsCreated    prometheus.Counter
	Cancellations   prometheus.Counter
}

// NewMetrics регистрирует метрики в переданном реестре
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BookingAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zapis",
			Name:      "booking_attempts_total",
			Help:      "Booking attempts by outcome (booked, overlap, unavailable, error).",
		}, []string{"outcome"}),
		SlotsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zapis",
			Name:      "slots_created_total",
			Help:      "Slots created by specialists.",
		}),
		Cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zapis",
			Name:      "appointment_cancellations_total",
			Help:      "Appointments canceled by either party.",
		}),
	}

	reg.MustRegister(m.BookingAttempts, m.SlotsCreated, m.Cancellations)
	return m
}
