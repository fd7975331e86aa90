package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics exposes counters/histograms for the booking widget.
type BookingMetrics struct {
	intentsTotal   *prometheus.CounterVec
	confirmedTotal prometheus.Counter
	activeSessions prometheus.Gauge
	submitLatency  prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		intentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barberbook",
			Subsystem: "booking",
			Name:      "intents_total",
			Help:      "Booking intents applied, by intent and result",
		}, []string{"intent", "result"}),
		confirmedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barberbook",
			Subsystem: "booking",
			Name:      "confirmed_total",
			Help:      "Bookings that reached the confirmed step",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "barberbook",
			Name:      "sessions_active",
			Help:      "Booking sessions currently held in memory",
		}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "barberbook",
			Subsystem: "booking",
			Name:      "submit_seconds",
			Help:      "Time spent in booking submission",
			Buckets:   []float64{0.1, 0.5, 1, 1.5, 2, 5},
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.intentsTotal, m.confirmedTotal, m.activeSessions, m.submitLatency)
	return m
}

// ObserveIntent counts one intent; result is "ok" or "rejected".
func (m *BookingMetrics) ObserveIntent(intent string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	m.intentsTotal.WithLabelValues(intent, result).Inc()
}

func (m *BookingMetrics) ObserveConfirmed() {
	if m == nil {
		return
	}
	m.confirmedTotal.Inc()
}

func (m *BookingMetrics) ObserveSubmit(d time.Duration) {
	if m == nil {
		return
	}
	m.submitLatency.Observe(d.Seconds())
}

func (m *BookingMetrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
