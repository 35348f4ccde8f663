package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports import outcomes as Prometheus metrics.
type Collector struct {
	imports *prometheus.CounterVec
	items   *prometheus.CounterVec
	latency prometheus.Histogram
}

// NewCollector creates the import metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meal_planner",
			Name:      "imports_total",
			Help:      "Grocery list imports by outcome.",
		}, []string{"status"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meal_planner",
			Name:      "grocery_items_changed_total",
			Help:      "Grocery items touched by imports, by kind of change.",
		}, []string{"change"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "meal_planner",
			Name:      "import_duration_seconds",
			Help:      "Time taken by grocery list imports.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.imports, c.items, c.latency)
	return c
}

// Observe records one import.
func (c *Collector) Observe(m ImportMetric) {
	status := m.Status
	if status == "" {
		status = StatusSuccess
	}
	c.imports.WithLabelValues(status).Inc()
	c.items.WithLabelValues("added").Add(float64(m.Added))
	c.items.WithLabelValues("updated").Add(float64(m.Updated))
	c.items.WithLabelValues("removed").Add(float64(m.Removed))
	c.latency.Observe(m.Latency.Seconds())
}
