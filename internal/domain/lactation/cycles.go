// Package lactation rebuilds lactation cycles from parturitions and milk
// weighings.
package lactation

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mamadbah2/goatherd/internal/domain/agecalc"
	"github.com/mamadbah2/goatherd/internal/domain/models"
)

// BuildCycles partitions one doe's milk weighings into one cycle per
// parturition. Cycle i covers [births[i], births[i+1]); the last cycle covers
// [births[last], asOf). Weighings dated before the first parturition or on or
// after asOf belong to no cycle. Callers pass weighings already grouped by
// animal, see BuildHerd. Inputs are not modified.
func BuildCycles(births []models.Parturition, milk []models.Weighing, asOf time.Time) []models.LactationCycle {
	sorted := sortedBirths(births)
	if len(sorted) == 0 {
		return nil
	}

	cycles := make([]models.LactationCycle, len(sorted))
	for i, p := range sorted {
		status := p.Status
		if status == "" {
			status = models.LactationActive
		}
		cycles[i] = models.LactationCycle{
			Number:          i + 1,
			GoatID:          p.GoatID,
			ParturitionDate: p.Date,
			Status:          status,
			Curve:           []models.CurvePoint{},
		}
		if i+1 < len(sorted) {
			cycles[i].EndDate = sorted[i+1].Date
			cycles[i].DaysInMilk = agecalc.DaysBetween(cycles[i].EndDate, p.Date)
		} else if asOf.After(p.Date) {
			cycles[i].DaysInMilk = agecalc.DaysBetween(asOf, p.Date)
		}
		if !p.DryingStartDate.IsZero() {
			cycles[i].DryingDEL = agecalc.DaysBetween(p.DryingStartDate, p.Date)
		}
	}

	cutoff := agecalc.StartOfDay(asOf)
	last := len(sorted) - 1
	for _, w := range milk {
		if w.Date.IsZero() {
			continue
		}
		idx := cycleIndex(sorted, w.Date)
		if idx < 0 {
			continue
		}
		if idx == last && !asOf.IsZero() && !w.Date.Before(cutoff) {
			continue
		}
		del := agecalc.DaysBetween(w.Date, sorted[idx].Date)
		cycles[idx].Curve = append(cycles[idx].Curve, models.CurvePoint{X: del, Kg: w.Kg})
	}

	for i := range cycles {
		summarize(&cycles[i])
	}
	return cycles
}

// cycleIndex returns the cycle whose half-open window holds at, or -1.
func cycleIndex(sorted []models.Parturition, at time.Time) int {
	return sort.Search(len(sorted), func(i int) bool { return sorted[i].Date.After(at) }) - 1
}

func summarize(c *models.LactationCycle) {
	sort.SliceStable(c.Curve, func(i, j int) bool { return c.Curve[i].X < c.Curve[j].X })
	c.WeighingsInCycle = len(c.Curve)
	if len(c.Curve) == 0 {
		return
	}

	var total float64
	for _, p := range c.Curve {
		total += p.Kg
		if p.Kg > c.Peak.Kg {
			c.Peak = models.Peak{Kg: p.Kg, DEL: p.X}
		}
	}
	c.AverageKg = math.Round(total/float64(len(c.Curve))*100) / 100
	c.TotalDays = c.Curve[len(c.Curve)-1].X
}

// StatusWarnings lists cycles whose recorded status disagrees with the
// reconstructed history. Statuses are never corrected here, only reported.
func StatusWarnings(cycles []models.LactationCycle) []string {
	var out []string
	for _, c := range cycles {
		switch {
		case c.Status == models.LactationUnknown:
			out = append(out, fmt.Sprintf("lactation #%d has an unrecognised status", c.Number))
		case !c.IsOpen() && !c.Status.IsTerminal():
			out = append(out, fmt.Sprintf("lactation #%d is still %s after the next kidding", c.Number, c.Status))
		case c.DryingDEL > 0 && c.Status.CanTransitionTo(models.LactationDrying):
			out = append(out, fmt.Sprintf("lactation #%d has a drying date but is still %s", c.Number, c.Status))
		}
	}
	return out
}

// Intervals returns the days between consecutive parturitions.
func Intervals(births []models.Parturition) []int {
	sorted := sortedBirths(births)
	if len(sorted) < 2 {
		return nil
	}
	out := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		out = append(out, agecalc.DaysBetween(sorted[i].Date, sorted[i-1].Date))
	}
	return out
}

// BuildHerd rebuilds the cycles of every doe with recorded parturitions,
// keyed by goat id.
func BuildHerd(parturitions []models.Parturition, milk []models.Weighing, asOf time.Time) map[string][]models.LactationCycle {
	births := make(map[string][]models.Parturition)
	for _, p := range parturitions {
		births[p.GoatID] = append(births[p.GoatID], p)
	}
	weighings := make(map[string][]models.Weighing)
	for _, w := range milk {
		weighings[w.AnimalID] = append(weighings[w.AnimalID], w)
	}

	out := make(map[string][]models.LactationCycle, len(births))
	for id, b := range births {
		out[id] = BuildCycles(b, weighings[id], asOf)
	}
	return out
}

func sortedBirths(births []models.Parturition) []models.Parturition {
	out := make([]models.Parturition, 0, len(births))
	for _, b := range births {
		if !b.Date.IsZero() {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
