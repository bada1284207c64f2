package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/goatherd/internal/domain/models"
)

func gauge(t *testing.T, reg *prometheus.Registry, name string, label string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if label == "" {
				if m.GetCounter() != nil {
					return m.GetCounter().GetValue()
				}
				return m.GetGauge().GetValue()
			}
			for _, lp := range m.GetLabel() {
				if lp.GetValue() == label {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{%s} not found", name, label)
	return 0
}

func TestNewCollector(t *testing.T) {
	collector := NewCollector(prometheus.NewRegistry())

	assert.NotNil(t, collector.reportsGenerated)
	assert.NotNil(t, collector.reportsFailed)
	assert.NotNil(t, collector.reportDuration)
	assert.NotNil(t, collector.herdAnimals)
	assert.NotNil(t, collector.readyAnimals)
	assert.NotNil(t, collector.growthAlerts)
}

func TestNewCollectorDefaultRegisterer(t *testing.T) {
	// Reset the default registry to avoid duplicate registration across tests.
	prometheus.DefaultRegisterer = prometheus.NewRegistry()

	assert.NotPanics(t, func() { NewCollector(nil) })
}

func TestRecordReport(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewCollector(reg)

	collector.RecordReport(models.HerdReport{
		CategoryCounts: map[string]int{"doe": 7, "kid_male": 3},
		ReadyToWean:    []string{"K1", "K2"},
		ReadyToServe:   []string{"Y1"},
		GrowthAlerts:   []string{"K3"},
	}, 0.42)

	assert.Equal(t, 1.0, gauge(t, reg, "goatherd_reports_generated_total", ""))
	assert.Equal(t, 7.0, gauge(t, reg, "goatherd_herd_animals", "doe"))
	assert.Equal(t, 3.0, gauge(t, reg, "goatherd_herd_animals", "kid_male"))
	assert.Equal(t, 0.0, gauge(t, reg, "goatherd_herd_animals", "buck"))
	assert.Equal(t, 2.0, gauge(t, reg, "goatherd_ready_animals", "weaning"))
	assert.Equal(t, 1.0, gauge(t, reg, "goatherd_ready_animals", "service"))
	assert.Equal(t, 1.0, gauge(t, reg, "goatherd_growth_alerts", ""))
}

func TestRecordFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewCollector(reg)

	collector.RecordFailure()
	collector.RecordFailure()

	assert.Equal(t, 2.0, gauge(t, reg, "goatherd_reports_failed_total", ""))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var collector *Collector

	assert.NotPanics(t, func() {
		collector.RecordReport(models.HerdReport{}, 1)
		collector.RecordFailure()
	})
}
