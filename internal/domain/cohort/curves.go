// Package cohort builds peer-group comparison curves and population
// statistics over per-animal metrics.
package cohort

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/mamadbah2/goatherd/internal/domain/growth"
	"github.com/mamadbah2/goatherd/internal/domain/models"
)

// DefaultBucketDays is the age bucket used for growth curves.
const DefaultBucketDays = 30

// Kind selects the comparison cohort.
type Kind string

const (
	KindPrimiparous    Kind = "primiparous"
	KindMultiparous    Kind = "multiparous"
	KindHerd           Kind = "herd"
	KindPriorLactation Kind = "prior"
	KindDam            Kind = "dam"
	KindProgeny        Kind = "progeny"
)

// ErrUnknownKind is returned by ParseKind for unsupported cohort names.
var ErrUnknownKind = errors.New("unknown cohort kind")

// ParseKind maps a query parameter to a Kind.
func ParseKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case KindPrimiparous, KindMultiparous, KindHerd, KindPriorLactation, KindDam, KindProgeny:
		return k, nil
	case "prior_lactation", "previous":
		return KindPriorLactation, nil
	default:
		return "", ErrUnknownKind
	}
}

// Request asks for the comparison curve of one animal. Cycle is the 1-based
// lactation number used by KindPriorLactation.
type Request struct {
	AnimalID string
	Kind     Kind
	Cycle    int
}

// Herd is the population a comparison is drawn from.
type Herd struct {
	Animals []models.Animal
	// Cycles holds the reconstructed lactations keyed by goat id.
	Cycles map[string][]models.LactationCycle
}

// Compare returns the average curve of the requested cohort. Peer cohorts
// never include the requesting animal. An empty cohort yields an empty curve.
func Compare(req Request, herd Herd) []models.CurvePoint {
	switch req.Kind {
	case KindPrimiparous:
		return AverageCurve(herd.peerCycles(req.AnimalID, func(c models.LactationCycle) bool { return c.Number == 1 }))
	case KindMultiparous:
		return AverageCurve(herd.peerCycles(req.AnimalID, func(c models.LactationCycle) bool { return c.Number >= 2 }))
	case KindHerd:
		return AverageCurve(herd.peerCycles(req.AnimalID, func(models.LactationCycle) bool { return true }))
	case KindPriorLactation:
		for _, c := range herd.Cycles[req.AnimalID] {
			if c.Number == req.Cycle {
				return AverageCurve([]models.LactationCycle{c})
			}
		}
		return []models.CurvePoint{}
	case KindDam:
		dam := herd.motherOf(req.AnimalID)
		if dam == "" {
			return []models.CurvePoint{}
		}
		return AverageCurve(herd.Cycles[dam])
	case KindProgeny:
		var cycles []models.LactationCycle
		for _, a := range herd.Animals {
			if a.MotherID == req.AnimalID && a.ID != req.AnimalID {
				cycles = append(cycles, herd.Cycles[a.ID]...)
			}
		}
		return AverageCurve(cycles)
	default:
		return []models.CurvePoint{}
	}
}

func (h Herd) peerCycles(exclude string, keep func(models.LactationCycle) bool) []models.LactationCycle {
	ids := make([]string, 0, len(h.Cycles))
	for id := range h.Cycles {
		if id != exclude {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var out []models.LactationCycle
	for _, id := range ids {
		for _, c := range h.Cycles[id] {
			if keep(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

func (h Herd) motherOf(id string) string {
	for _, a := range h.Animals {
		if a.ID == id {
			return a.MotherID
		}
	}
	return ""
}

// AverageCurve groups every curve point by days in lactation and averages kg
// per day.
func AverageCurve(cycles []models.LactationCycle) []models.CurvePoint {
	var points []models.CurvePoint
	for _, c := range cycles {
		points = append(points, c.Curve...)
	}
	return bucketMean(points, 1)
}

// GrowthCurve averages series weights per age bucket. Bucket keys are the
// bucket's first day.
func GrowthCurve(series []growth.Series, bucketDays int) []models.CurvePoint {
	if bucketDays <= 0 {
		bucketDays = DefaultBucketDays
	}
	var points []models.CurvePoint
	for _, s := range series {
		for _, p := range s.Points() {
			points = append(points, models.CurvePoint{X: p.AgeDays, Kg: p.Kg})
		}
	}
	return bucketMean(points, bucketDays)
}

func bucketMean(points []models.CurvePoint, width int) []models.CurvePoint {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, p := range points {
		key := (p.X / width) * width
		sums[key] += p.Kg
		counts[key]++
	}

	out := make([]models.CurvePoint, 0, len(sums))
	for key, sum := range sums {
		out = append(out, models.CurvePoint{X: key, Kg: math.Round(sum/float64(counts[key])*100) / 100})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}
