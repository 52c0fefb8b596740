package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

// StarfieldMetricsCollector tracks voyages. It satisfies the navigator's
// Observer interface so it can be attached directly.
type StarfieldMetricsCollector struct {
	activeVoyages  prometheus.Gauge
	voyagesTotal   prometheus.Counter
	arrivalsTotal  *prometheus.CounterVec
	voyageDuration prometheus.Histogram

	mu      sync.Mutex
	started map[string]time.Time
	now     func() time.Time
}

// NewStarfieldMetricsCollector creates a new starfield metrics collector
func NewStarfieldMetricsCollector() *StarfieldMetricsCollector {
	return &StarfieldMetricsCollector{
		activeVoyages: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "starfield",
				Name:      "active_voyages",
				Help:      "Number of voyages currently running",
			},
		),

		voyagesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "starfield",
				Name:      "voyages_total",
				Help:      "Total number of voyages launched",
			},
		),

		// Arrivals by destination kind
		arrivalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "starfield",
				Name:      "arrivals_total",
				Help:      "Total number of arrivals by destination kind",
			},
			[]string{"kind"},
		),

		// How long a detail view keeps its voyage open
		voyageDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "starfield",
				Name:      "voyage_duration_seconds",
				Help:      "Voyage lifetime distribution",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
			},
		),

		started: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Register registers all starfield metrics with the Prometheus registry
func (c *StarfieldMetricsCollector) Register() error {
	return register(c.activeVoyages, c.voyagesTotal, c.arrivalsTotal, c.voyageDuration)
}

// VoyageStarted records a launch
func (c *StarfieldMetricsCollector) VoyageStarted(voyageID string) {
	c.mu.Lock()
	c.started[voyageID] = c.now()
	c.mu.Unlock()

	c.activeVoyages.Inc()
	c.voyagesTotal.Inc()
}

// VoyageArrived records an arrival
func (c *StarfieldMetricsCollector) VoyageArrived(voyageID string, arrival starfield.Placement) {
	c.arrivalsTotal.WithLabelValues(string(arrival.Destination.Kind)).Inc()
}

// VoyageEnded records a teardown
func (c *StarfieldMetricsCollector) VoyageEnded(voyageID string) {
	c.mu.Lock()
	start, ok := c.started[voyageID]
	delete(c.started, voyageID)
	c.mu.Unlock()

	c.activeVoyages.Dec()
	if ok {
		c.voyageDuration.Observe(c.now().Sub(start).Seconds())
	}
}
