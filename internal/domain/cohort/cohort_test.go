package cohort

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/goatherd/internal/domain/growth"
	"github.com/mamadbah2/goatherd/internal/domain/models"
)

func cycle(n int, points ...models.CurvePoint) models.LactationCycle {
	return models.LactationCycle{Number: n, Curve: points}
}

func pt(del int, kg float64) models.CurvePoint {
	return models.CurvePoint{X: del, Kg: kg}
}

func fixtureHerd() Herd {
	return Herd{
		Animals: []models.Animal{
			{ID: "C1", Sex: models.SexFemale},
			{ID: "C2", Sex: models.SexFemale},
			{ID: "C3", Sex: models.SexFemale, MotherID: "C1"},
		},
		Cycles: map[string][]models.LactationCycle{
			"C1": {cycle(1, pt(10, 2), pt(20, 3)), cycle(2, pt(10, 4))},
			"C2": {cycle(1, pt(10, 4))},
			"C3": {cycle(1, pt(10, 1), pt(30, 2))},
		},
	}
}

func TestCompare(t *testing.T) {
	herd := fixtureHerd()

	cases := []struct {
		name string
		req  Request
		want []models.CurvePoint
	}{
		{"primiparous peers exclude self", Request{AnimalID: "C1", Kind: KindPrimiparous}, []models.CurvePoint{pt(10, 2.5), pt(30, 2)}},
		{"multiparous", Request{AnimalID: "C2", Kind: KindMultiparous}, []models.CurvePoint{pt(10, 4)}},
		{"herd", Request{AnimalID: "C3", Kind: KindHerd}, []models.CurvePoint{pt(10, 3.33), pt(20, 3)}},
		{"prior lactation", Request{AnimalID: "C1", Kind: KindPriorLactation, Cycle: 1}, []models.CurvePoint{pt(10, 2), pt(20, 3)}},
		{"missing prior lactation", Request{AnimalID: "C1", Kind: KindPriorLactation, Cycle: 5}, []models.CurvePoint{}},
		{"dam", Request{AnimalID: "C3", Kind: KindDam}, []models.CurvePoint{pt(10, 3), pt(20, 3)}},
		{"unknown dam", Request{AnimalID: "C2", Kind: KindDam}, []models.CurvePoint{}},
		{"progeny", Request{AnimalID: "C1", Kind: KindProgeny}, []models.CurvePoint{pt(10, 1), pt(30, 2)}},
		{"no progeny", Request{AnimalID: "C2", Kind: KindProgeny}, []models.CurvePoint{}},
		{"unknown kind", Request{AnimalID: "C2", Kind: "siblings"}, []models.CurvePoint{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compare(tc.req, herd))
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Multiparous ")
	require.NoError(t, err)
	assert.Equal(t, KindMultiparous, k)

	k, err = ParseKind("previous")
	require.NoError(t, err)
	assert.Equal(t, KindPriorLactation, k)

	_, err = ParseKind("cousins")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestGrowthCurve(t *testing.T) {
	birth := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	weigh := func(age int, kg float64) models.Weighing {
		return models.Weighing{Date: birth.AddDate(0, 0, age), Kg: kg}
	}
	series := []growth.Series{
		growth.NewSeries(birth, 3, []models.Weighing{weigh(35, 9), weigh(65, 14)}),
		growth.NewSeries(birth, 4, []models.Weighing{weigh(40, 11)}),
	}

	want := []models.CurvePoint{pt(0, 3.5), pt(30, 10), pt(60, 14)}
	assert.Equal(t, want, GrowthCurve(series, 30))
	assert.Equal(t, want, GrowthCurve(series, 0))
	assert.Empty(t, GrowthCurve(nil, 30))
}

func TestDescribeAndBand(t *testing.T) {
	d := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.Equal(t, 8, d.Count)
	assert.InDelta(t, 5, d.Mean, 1e-9)
	assert.InDelta(t, 2, d.StdDev, 1e-9)
	assert.InDelta(t, 4.2, d.PoorThreshold, 1e-9)
	assert.InDelta(t, 5.8, d.ExcellentThreshold, 1e-9)
	assert.True(t, d.Banded)
	assert.Equal(t, BandPoor, d.Band(4))
	assert.Equal(t, BandAverage, d.Band(5))
	assert.Equal(t, BandOutstanding, d.Band(7))
}

func TestSingleElementPopulationIsAverage(t *testing.T) {
	d := Describe([]float64{150})

	assert.Zero(t, d.StdDev)
	assert.False(t, d.Banded)
	assert.Equal(t, BandAverage, d.Band(150))
	assert.Equal(t, BandAverage, d.Band(10))
}

func TestNearUniformPopulationIsNotBanded(t *testing.T) {
	d := Describe([]float64{100, 101, 99})

	assert.False(t, d.Banded)
	assert.Equal(t, BandAverage, d.Band(99))
	assert.Equal(t, Distribution{}, Describe(nil))
}

func TestPercentileRank(t *testing.T) {
	values := []float64{9, 4, 2, 5, 4, 7, 4, 5}

	assert.Equal(t, 0.0, PercentileRank(2, values))
	assert.Equal(t, 0.125, PercentileRank(4, values))
	assert.Equal(t, 0.875, PercentileRank(9, values))
	assert.Equal(t, 0.0, PercentileRank(3, nil))
	assert.Equal(t, 9.0, values[0], "input is not sorted in place")
}

func TestRankAndSummarize(t *testing.T) {
	metrics := map[string]float64{"a": 100, "b": 150, "c": 50}

	ranked := Rank(metrics)

	require.Len(t, ranked, 3)
	assert.Equal(t, RankedMetric{ID: "b", Value: 150, Band: BandOutstanding, Percentile: 2.0 / 3}, ranked[0])
	assert.Equal(t, RankedMetric{ID: "a", Value: 100, Band: BandAverage, Percentile: 1.0 / 3}, ranked[1])
	assert.Equal(t, RankedMetric{ID: "c", Value: 50, Band: BandPoor, Percentile: 0}, ranked[2])

	summary := Summarize([]float64{100, 150, 50})
	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 100.0, summary.Mean)
	assert.Equal(t, 40.82, summary.StdDev)
	assert.Equal(t, 1, summary.Poor)
	assert.Equal(t, 1, summary.Average)
	assert.Equal(t, 1, summary.Outstanding)
}
