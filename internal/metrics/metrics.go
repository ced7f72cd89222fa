// Package metrics exposes Prometheus instrumentation for analyses, collectors and
// notifications.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the instrumentation surface used by the service layer.
type Recorder interface {
	RecordAnalysis(state string, elapsed time.Duration)
	RecordValuation(grade string)
	RecordCollectorFailure(source string)
	RecordNotification(channel string, ok bool)
}

// Collector records metrics into a Prometheus registry.
type Collector struct {
	analyses          *prometheus.CounterVec
	analysisLatency   prometheus.Histogram
	valuations        *prometheus.CounterVec
	collectorFailures *prometheus.CounterVec
	notifications     *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "domain_recovery_analyses_total",
			Help: "Completed analyses by lifecycle state",
		}, []string{"state"}),
		analysisLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "domain_recovery_analysis_duration_seconds",
			Help:    "End-to-end analysis latency including signal collection",
			Buckets: prometheus.DefBuckets,
		}),
		valuations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "domain_recovery_valuations_total",
			Help: "Valuations by letter grade",
		}, []string{"grade"}),
		collectorFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "domain_recovery_collector_failures_total",
			Help: "Signal collection failures by source",
		}, []string{"source"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "domain_recovery_notifications_total",
			Help: "Notification attempts by channel and result",
		}, []string{"channel", "result"}),
	}

	reg.MustRegister(
		c.analyses,
		c.analysisLatency,
		c.valuations,
		c.collectorFailures,
		c.notifications,
	)
	return c
}

func (c *Collector) RecordAnalysis(state string, elapsed time.Duration) {
	c.analyses.WithLabelValues(state).Inc()
	c.analysisLatency.Observe(elapsed.Seconds())
}

func (c *Collector) RecordValuation(grade string) {
	c.valuations.WithLabelValues(grade).Inc()
}

func (c *Collector) RecordCollectorFailure(source string) {
	c.collectorFailures.WithLabelValues(source).Inc()
}

func (c *Collector) RecordNotification(channel string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	c.notifications.WithLabelValues(channel, result).Inc()
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordAnalysis(string, time.Duration) {}
func (Nop) RecordValuation(string)               {}
func (Nop) RecordCollectorFailure(string)        {}
func (Nop) RecordNotification(string, bool)      {}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
