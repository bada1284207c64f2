// Package metrics exposes herd report generation to Prometheus.
//
// Counters track report runs, the histogram tracks how long a full snapshot
// takes to analyse, and the gauges mirror the figures of the last report so
// herd size and readiness can be graphed over time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mamadbah2/goatherd/internal/domain/models"
)

// Collector records herd report metrics.
type Collector struct {
	reportsGenerated prometheus.Counter
	reportsFailed    prometheus.Counter
	reportDuration   prometheus.Histogram

	herdAnimals  *prometheus.GaugeVec
	readyAnimals *prometheus.GaugeVec
	growthAlerts prometheus.Gauge
}

// NewCollector builds and registers the collector. A nil registerer uses the
// Prometheus default registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		reportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goatherd_reports_generated_total",
			Help: "Total number of herd reports generated",
		}),
		reportsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goatherd_reports_failed_total",
			Help: "Total number of herd report runs that failed",
		}),
		reportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "goatherd_report_duration_seconds",
			Help:    "Time taken to load the herd snapshot and build a report",
			Buckets: prometheus.DefBuckets,
		}),
		herdAnimals: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "goatherd_herd_animals",
			Help: "Managed animals per category in the last report",
		}, []string{"category"}),
		readyAnimals: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "goatherd_ready_animals",
			Help: "Animals flagged ready for a transition in the last report",
		}, []string{"transition"}),
		growthAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "goatherd_growth_alerts",
			Help: "Animals under the growth alert threshold in the last report",
		}),
	}

	reg.MustRegister(
		c.reportsGenerated,
		c.reportsFailed,
		c.reportDuration,
		c.herdAnimals,
		c.readyAnimals,
		c.growthAlerts,
	)

	return c
}

// RecordReport records a successful report run.
func (c *Collector) RecordReport(report models.HerdReport, seconds float64) {
	if c == nil {
		return
	}
	c.reportsGenerated.Inc()
	c.reportDuration.Observe(seconds)

	for _, category := range models.AllCategories() {
		c.herdAnimals.WithLabelValues(string(category)).Set(float64(report.CategoryCounts[string(category)]))
	}
	c.readyAnimals.WithLabelValues("weaning").Set(float64(len(report.ReadyToWean)))
	c.readyAnimals.WithLabelValues("service").Set(float64(len(report.ReadyToServe)))
	c.growthAlerts.Set(float64(len(report.GrowthAlerts)))
}

// RecordFailure records a failed report run.
func (c *Collector) RecordFailure() {
	if c == nil {
		return
	}
	c.reportsFailed.Inc()
}
