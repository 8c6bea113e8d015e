package sheet2pdf

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the catalog pipeline.
// All increment methods are nil-safe so the library works without metrics.
type Metrics struct {
	Registry       *prometheus.Registry
	RowsTotal      prometheus.Counter
	RowsRejected   *prometheus.CounterVec
	ImagesFetched  prometheus.Counter
	ImageFailures  prometheus.Counter
	RunsTotal      *prometheus.CounterVec
	RenderDuration prometheus.Histogram
	ProductsPerRun prometheus.Histogram
}

// NewMetrics constructs and registers all collectors on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	rows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_rows_total",
		Help: "Total spreadsheet rows processed by the validator.",
	})
	rejected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_rows_rejected_total",
			Help: "Total rows rejected during validation, by reason.",
		},
		[]string{"reason"},
	)
	imagesFetched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_images_fetched_total",
		Help: "Total product images downloaded successfully.",
	})
	imageFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_image_failures_total",
		Help: "Total product image downloads that failed.",
	})
	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_runs_total",
			Help: "Total catalog runs, by outcome.",
		},
		[]string{"outcome"},
	)
	renderDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_render_duration_seconds",
		Help:    "Time spent rendering the assembled document.",
		Buckets: prometheus.DefBuckets,
	})
	productsPerRun := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_products_per_run",
		Help:    "Validated products per catalog run.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	registry.MustRegister(rows, rejected, imagesFetched, imageFailures, runs, renderDuration, productsPerRun)

	return &Metrics{
		Registry:       registry,
		RowsTotal:      rows,
		RowsRejected:   rejected,
		ImagesFetched:  imagesFetched,
		ImageFailures:  imageFailures,
		RunsTotal:      runs,
		RenderDuration: renderDuration,
		ProductsPerRun: productsPerRun,
	}
}

// AddRows increments the processed rows counter.
func (m *Metrics) AddRows(n int) {
	if m == nil {
		return
	}
	m.RowsTotal.Add(float64(n))
}

// IncRejected increments the rejected rows counter for a reason label.
func (m *Metrics) IncRejected(reason string) {
	if m == nil {
		return
	}
	m.RowsRejected.WithLabelValues(reason).Inc()
}

// IncImageFetched increments the downloaded images counter.
func (m *Metrics) IncImageFetched() {
	if m == nil {
		return
	}
	m.ImagesFetched.Inc()
}

// IncImageFailure increments the failed downloads counter.
func (m *Metrics) IncImageFailure() {
	if m == nil {
		return
	}
	m.ImageFailures.Inc()
}

// IncRun increments the runs counter for an outcome label.
func (m *Metrics) IncRun(outcome string) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRender records a render duration.
func (m *Metrics) ObserveRender(d time.Duration) {
	if m == nil {
		return
	}
	m.RenderDuration.Observe(d.Seconds())
}

// ObserveProducts records the validated product count for a run.
func (m *Metrics) ObserveProducts(n int) {
	if m == nil {
		return
	}
	m.ProductsPerRun.Observe(float64(n))
}
