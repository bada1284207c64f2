package cohort

import (
	"math"
	"sort"

	"github.com/mamadbah2/goatherd/internal/domain/models"
)

const (
	thresholdSpread = 0.4
	minRelativeSD   = 0.1
)

// Band is the relative standing of a value in its population.
type Band string

const (
	BandPoor        Band = "poor"
	BandAverage     Band = "average"
	BandOutstanding Band = "outstanding"
)

// Distribution describes a population of metric values. Standard deviation
// uses the population formula.
type Distribution struct {
	Count              int
	Mean               float64
	StdDev             float64
	PoorThreshold      float64
	ExcellentThreshold float64
	// Banded is false when the spread is too small for Poor and Outstanding
	// to mean anything; every value is then Average.
	Banded bool
}

// Describe computes the distribution of values. Empty input yields the zero
// Distribution.
func Describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	sd := math.Sqrt(sq / n)

	return Distribution{
		Count:              len(values),
		Mean:               mean,
		StdDev:             sd,
		PoorThreshold:      mean - thresholdSpread*sd,
		ExcellentThreshold: mean + thresholdSpread*sd,
		Banded:             sd > minRelativeSD*mean,
	}
}

// Band classifies v against the distribution thresholds.
func (d Distribution) Band(v float64) Band {
	if !d.Banded {
		return BandAverage
	}
	switch {
	case v < d.PoorThreshold:
		return BandPoor
	case v > d.ExcellentThreshold:
		return BandOutstanding
	default:
		return BandAverage
	}
}

// PercentileRank returns the zero-based position of v in the ascending values
// divided by the population size. Ties take the lowest position.
func PercentileRank(v float64, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return float64(sort.SearchFloat64s(sorted, v)) / float64(len(sorted))
}

// RankedMetric is one animal's standing for a metric.
type RankedMetric struct {
	ID         string  `json:"id"`
	Value      float64 `json:"value"`
	Band       Band    `json:"band"`
	Percentile float64 `json:"percentile"`
}

// Rank bands and ranks every animal's metric, best first.
func Rank(metrics map[string]float64) []RankedMetric {
	values := make([]float64, 0, len(metrics))
	for _, v := range metrics {
		values = append(values, v)
	}
	dist := Describe(values)

	out := make([]RankedMetric, 0, len(metrics))
	for id, v := range metrics {
		out = append(out, RankedMetric{
			ID:         id,
			Value:      v,
			Band:       dist.Band(v),
			Percentile: PercentileRank(v, values),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Summarize condenses a population into the report summary shape.
func Summarize(values []float64) models.MetricSummary {
	dist := Describe(values)
	summary := models.MetricSummary{
		Count:              dist.Count,
		Mean:               round2(dist.Mean),
		StdDev:             round2(dist.StdDev),
		PoorThreshold:      round2(dist.PoorThreshold),
		ExcellentThreshold: round2(dist.ExcellentThreshold),
	}
	for _, v := range values {
		switch dist.Band(v) {
		case BandPoor:
			summary.Poor++
		case BandOutstanding:
			summary.Outstanding++
		default:
			summary.Average++
		}
	}
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
