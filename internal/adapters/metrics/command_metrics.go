package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
)

// Outcome labels for mediator requests
const (
	outcomeSuccess         = "success"
	outcomeInvalid         = "invalid"
	outcomeNotFound        = "not_found"
	outcomeUnauthenticated = "unauthenticated"
	outcomeError           = "error"
)

// CommandMetricsCollector tracks ship and auth requests passing through the mediator
type CommandMetricsCollector struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
	inFlight *prometheus.GaugeVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "command_duration_seconds",
				Help:      "Time spent handling a command or query, including storage",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"command", "status"},
		),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "commands_total",
				Help:      "Commands and queries handled, by type and outcome",
			},
			[]string{"command", "status"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "commands_in_flight",
				Help:      "Commands and queries currently being handled",
			},
			[]string{"command"},
		),
	}
}

// Register registers all command metrics with the Prometheus registry
func (c *CommandMetricsCollector) Register() error {
	return register(c.duration, c.total, c.inFlight)
}

// Begin marks a request as in flight and returns the function that records its completion
func (c *CommandMetricsCollector) Begin(commandName string) func(duration float64, err error) {
	gauge := c.inFlight.WithLabelValues(commandName)
	gauge.Inc()
	return func(duration float64, err error) {
		gauge.Dec()
		c.RecordCommandExecution(commandName, duration, outcome(err))
	}
}

// RecordCommandExecution records one finished request
func (c *CommandMetricsCollector) RecordCommandExecution(commandName string, duration float64, status string) {
	c.duration.WithLabelValues(commandName, status).Observe(duration)
	c.total.WithLabelValues(commandName, status).Inc()
}

// outcome classifies err by the domain error taxonomy
func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case shared.IsNotFound(err):
		return outcomeNotFound
	case shared.IsUnauthenticated(err):
		return outcomeUnauthenticated
	}
	if _, ok := shared.AsValidation(err); ok {
		return outcomeInvalid
	}
	return outcomeError
}
