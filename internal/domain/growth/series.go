package growth

import (
	"sort"
	"time"

	"github.com/mamadbah2/goatherd/internal/domain/agecalc"
	"github.com/mamadbah2/goatherd/internal/domain/models"
)

// ToleranceDays is the distance within which a recorded weighing is used
// as-is instead of interpolating.
const ToleranceDays = 5

// Point is a weight observed at a given age.
type Point struct {
	AgeDays int     `json:"age_days"`
	Kg      float64 `json:"kg"`
}

// Series is an age-ordered weighing history of one animal.
type Series struct {
	points []Point
}

// NewSeries converts dated weighings into an age series. A synthetic birth
// point is added when birthWeight is known and no weighing sits on day 0.
// Weighings dated before birth are dropped, and an unknown birth date yields
// an empty series.
func NewSeries(birth time.Time, birthWeight float64, weighings []models.Weighing) Series {
	if birth.IsZero() {
		return Series{}
	}

	points := make([]Point, 0, len(weighings)+1)
	hasDayZero := false
	for _, w := range weighings {
		age := agecalc.AgeAt(birth, w.Date)
		if age < 0 || w.Date.IsZero() {
			continue
		}
		if age == 0 {
			hasDayZero = true
		}
		points = append(points, Point{AgeDays: age, Kg: w.Kg})
	}
	if birthWeight > 0 && !hasDayZero {
		points = append(points, Point{AgeDays: 0, Kg: birthWeight})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].AgeDays < points[j].AgeDays })
	return Series{points: points}
}

// Points returns a copy of the series points.
func (s Series) Points() []Point {
	return append([]Point(nil), s.points...)
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.points)
}

// WeightAt returns the weight at the given age. A point within ToleranceDays
// is returned directly; otherwise the value is interpolated between the
// closest points on each side. It never extrapolates.
func (s Series) WeightAt(ageDays int) (float64, bool) {
	if len(s.points) == 0 {
		return 0, false
	}

	best, bestDist := -1, ToleranceDays+1
	for i, p := range s.points {
		if d := abs(p.AgeDays - ageDays); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		return round2(s.points[best].Kg), true
	}

	var before, after *Point
	for i := range s.points {
		p := &s.points[i]
		if p.AgeDays < ageDays {
			before = p
		}
		if p.AgeDays > ageDays && after == nil {
			after = p
		}
	}
	if before == nil || after == nil {
		return 0, false
	}

	ratio := float64(ageDays-before.AgeDays) / float64(after.AgeDays-before.AgeDays)
	return round2(before.Kg + ratio*(after.Kg-before.Kg)), true
}

// DailyGain returns the average daily gain (GDP) in grams per day between the
// first and last points of the series.
func DailyGain(s Series) (float64, bool) {
	if len(s.points) < 2 {
		return 0, false
	}
	first, last := s.points[0], s.points[len(s.points)-1]
	days := last.AgeDays - first.AgeDays
	if days <= 0 {
		return 0, false
	}
	return round2((last.Kg - first.Kg) * 1000 / float64(days)), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
