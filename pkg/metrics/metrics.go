package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the export and image upload counters.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics provides observability for rendering, exports and image uploads.
type Metrics struct {
	Renders      *prometheus.CounterVec
	Exports      *prometheus.CounterVec
	ImageUploads *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the portfolio counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWith(reg, reg)
}

// NewWith registers the counters on reg and serves them from gatherer.
func NewWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Renders: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_renders_total",
			Help: "Total number of portfolio renders by renderer",
		}, []string{"renderer"}),
		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_exports_total",
			Help: "Total number of export attempts by outcome",
		}, []string{"outcome"}),
		ImageUploads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_image_uploads_total",
			Help: "Total number of profile image reads by outcome",
		}, []string{"outcome"}),
		gatherer: gatherer,
	}
}

// IncRender records a completed render.
func (m *Metrics) IncRender(renderer string) {
	m.Renders.WithLabelValues(renderer).Inc()
}

// IncExport records an export attempt.
func (m *Metrics) IncExport(err error) {
	m.Exports.WithLabelValues(outcome(err)).Inc()
}

// IncImageUpload records a profile image read.
func (m *Metrics) IncImageUpload(err error) {
	m.ImageUploads.WithLabelValues(outcome(err)).Inc()
}

// Handler exposes the registered metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
