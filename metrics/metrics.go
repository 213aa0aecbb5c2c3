package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PageRendersTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "escolas_page_renders_total",
		Help: "Total number of dashboard page renders",
	})
	MarkersPerRender = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "escolas_markers_per_render",
		Help:    "Number of markers drawn per map render",
		Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 20000},
	})
	RenderDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "escolas_render_duration_ms",
		Help:    "Map render duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	})
	SchoolsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "escolas_schools_loaded",
		Help: "Schools in the active data snapshot",
	})
	RowsDropped = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "escolas_rows_dropped",
		Help: "Spreadsheet rows dropped from the active snapshot for missing fields",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "escolas_cache_hits_total",
		Help: "Total marker cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "escolas_cache_misses_total",
		Help: "Total marker cache misses",
	})
	ImportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "escolas_imports_total",
		Help: "Spreadsheet imports by result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(PageRendersTotal)
	prometheus.MustRegister(MarkersPerRender)
	prometheus.MustRegister(RenderDurationMs)
	prometheus.MustRegister(SchoolsLoaded)
	prometheus.MustRegister(RowsDropped)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(ImportsTotal)
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
