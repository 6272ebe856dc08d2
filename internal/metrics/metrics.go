// Package metrics đăng ký các metric Prometheus của luồng xác thực chứng chỉ.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome kết quả một lần verify
const (
	OutcomeSuccess       = "success"
	OutcomeAlreadyExists = "already_exists"
	OutcomeNotFound      = "lecture_not_found"
	OutcomeInvalidImage  = "invalid_image"
	OutcomeMismatch      = "mismatch"
	OutcomeError         = "error"
)

// Metrics các metric của module certificate
type Metrics struct {
	Verifications *prometheus.CounterVec
	MatchStages   *prometheus.CounterVec
	OCRLatency    prometheus.Histogram
}

// New tạo và đăng ký metric vào reg. reg = nil thì dùng registry mặc định.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "certificate_verifications_total",
			Help: "Total certificate verification attempts by outcome",
		}, []string{"outcome"}),

		MatchStages: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "certificate_match_stage_total",
			Help: "Total match decisions by deciding stage",
		}, []string{"stage"}),

		OCRLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "certificate_ocr_duration_seconds",
			Help:    "Duration of OCR extraction calls",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// IncVerification ghi nhận kết quả verify
func (m *Metrics) IncVerification(outcome string) {
	if m != nil {
		m.Verifications.WithLabelValues(outcome).Inc()
	}
}

// IncMatchStage ghi nhận bước đã quyết định
func (m *Metrics) IncMatchStage(stage string) {
	if m != nil {
		m.MatchStages.WithLabelValues(stage).Inc()
	}
}

// ObserveOCRLatency thời gian gọi OCR
func (m *Metrics) ObserveOCRLatency(d time.Duration) {
	if m != nil {
		m.OCRLatency.Observe(d.Seconds())
	}
}
