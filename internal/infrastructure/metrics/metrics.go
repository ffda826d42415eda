package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HexGridsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "touristmap_hexgrids_generated_total",
		Help: "Total number of hex grids generated",
	}, []string{"region"})
	HexGridFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "touristmap_hexgrid_failures_total",
		Help: "Total number of hex grid generations that degraded to an empty grid",
	}, []string{"region"})
	HexCellsGenerated = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "touristmap_hexcells_per_grid",
		Help:    "Number of cells in a generated grid",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
	})
	UnionFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "touristmap_geofence_union_failures_total",
		Help: "Total number of hexagons skipped because the union step failed",
	})
	GeofencesBuiltTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "touristmap_geofences_built_total",
		Help: "Total number of geofences built by outcome",
	}, []string{"outcome"})
	CoverageFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "touristmap_coverage_failures_total",
		Help: "Total number of spots whose circle or buffer could not be built",
	}, []string{"type"})
	ComputeDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "touristmap_compute_duration_ms",
		Help:    "Geospatial computation duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"operation"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "touristmap_hexgrid_cache_hits_total",
		Help: "Total hex grid cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "touristmap_hexgrid_cache_misses_total",
		Help: "Total hex grid cache misses",
	})
	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "touristmap_notifications_total",
		Help: "Total notifications added by type",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(HexGridsGeneratedTotal)
	prometheus.MustRegister(HexGridFailuresTotal)
	prometheus.MustRegister(HexCellsGenerated)
	prometheus.MustRegister(UnionFailuresTotal)
	prometheus.MustRegister(GeofencesBuiltTotal)
	prometheus.MustRegister(CoverageFailuresTotal)
	prometheus.MustRegister(ComputeDurationMs)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(NotificationsTotal)
}

// Handler /metrics に登録済みのメトリクスを公開する
func Handler() http.Handler { return promhttp.Handler() }
