package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CertificatesCreated prometheus.Counter
	Verifications       *prometheus.CounterVec
	DocumentsRendered   *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		CertificatesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certgate_certificates_created_total",
			Help: "Total number of certificates registered",
		}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "certgate_certificate_verifications_total",
			Help: "Total number of verification attempts by result",
		}, []string{"result"}),
		DocumentsRendered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "certgate_documents_rendered_total",
			Help: "Total number of documents rendered by kind",
		}, []string{"kind"}),
	}
}

func (m *Metrics) IncrementCertificatesCreated() {
	m.CertificatesCreated.Inc()
}

func (m *Metrics) IncrementVerifications(result string) {
	m.Verifications.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementDocumentsRendered(kind string) {
	m.DocumentsRendered.WithLabelValues(kind).Inc()
}
