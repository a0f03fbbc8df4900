package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Deliveries       *prometheus.CounterVec
	Fallbacks        prometheus.Counter
	ProbeUnavailable *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		Deliveries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "certgate_deliveries_total",
			Help: "Total number of delivery attempts by channel and outcome",
		}, []string{"channel", "outcome"}),
		Fallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certgate_delivery_fallbacks_total",
			Help: "Total number of deliveries completed on a fallback channel",
		}),
		ProbeUnavailable: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "certgate_channel_probe_unavailable_total",
			Help: "Total number of availability probes that reported unavailable",
		}, []string{"channel"}),
	}
}

func (m *Metrics) IncrementDeliveries(channel, outcome string) {
	m.Deliveries.WithLabelValues(channel, outcome).Inc()
}

func (m *Metrics) IncrementFallbacks() {
	m.Fallbacks.Inc()
}

func (m *Metrics) IncrementProbeUnavailable(channel string) {
	m.ProbeUnavailable.WithLabelValues(channel).Inc()
}
