package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	registry *prometheus.Registry

	references      *prometheus.CounterVec
	faults          *prometheus.CounterVec
	averageResident *prometheus.GaugeVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		references: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pagesim_references_total",
			Help: "References processed, by policy.",
		}, []string{"policy"}),
		faults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pagesim_page_faults_total",
			Help: "Page faults, by policy.",
		}, []string{"policy"}),
		averageResident: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pagesim_average_resident_pages",
			Help: "Average resident-set size of finished variable-allocation runs.",
		}, []string{"policy"}),
	}
}
