package lactation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/goatherd/internal/domain/models"
)

var asOf = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func birth(date time.Time) models.Parturition {
	return models.Parturition{GoatID: "C1", Date: date, Outcome: models.OutcomeNormal}
}

func milk(date time.Time, kg float64) models.Weighing {
	return models.Weighing{AnimalID: "C1", Date: date, Kg: kg}
}

func TestBuildCyclesAssignsDEL(t *testing.T) {
	births := []models.Parturition{birth(day(2023, 7, 1)), birth(day(2023, 1, 1))}
	weighings := []models.Weighing{milk(day(2023, 3, 1), 3), milk(day(2023, 8, 1), 2.5)}

	cycles := BuildCycles(births, weighings, asOf)

	require.Len(t, cycles, 2)
	assert.Equal(t, 1, cycles[0].Number)
	assert.True(t, cycles[0].ParturitionDate.Equal(day(2023, 1, 1)))
	assert.Equal(t, []models.CurvePoint{{X: 59, Kg: 3}}, cycles[0].Curve)
	assert.Equal(t, []models.CurvePoint{{X: 31, Kg: 2.5}}, cycles[1].Curve)
	assert.False(t, cycles[0].IsOpen())
	assert.True(t, cycles[1].IsOpen())
	assert.Equal(t, 181, cycles[0].DaysInMilk)
	assert.Equal(t, 184, cycles[1].DaysInMilk)

	assert.True(t, births[0].Date.Equal(day(2023, 7, 1)), "input order is untouched")
}

func TestBuildCyclesStatistics(t *testing.T) {
	births := []models.Parturition{birth(day(2023, 1, 1))}
	births[0].Status = models.LactationDrying
	births[0].DryingStartDate = day(2023, 9, 1)
	weighings := []models.Weighing{
		milk(day(2023, 3, 2), 2),
		milk(day(2023, 2, 10), 3.5),
		milk(day(2023, 4, 1), 2.6),
	}

	cycles := BuildCycles(births, weighings, asOf)

	require.Len(t, cycles, 1)
	c := cycles[0]
	assert.Equal(t, []models.CurvePoint{{X: 40, Kg: 3.5}, {X: 60, Kg: 2}, {X: 90, Kg: 2.6}}, c.Curve)
	assert.Equal(t, 2.7, c.AverageKg)
	assert.Equal(t, models.Peak{Kg: 3.5, DEL: 40}, c.Peak)
	assert.Equal(t, 90, c.TotalDays)
	assert.Equal(t, 3, c.WeighingsInCycle)
	assert.Equal(t, models.LactationDrying, c.Status)
	assert.Equal(t, 243, c.DryingDEL)
}

func TestBuildCyclesEmptyCycle(t *testing.T) {
	cycles := BuildCycles([]models.Parturition{birth(day(2023, 1, 1)), birth(day(2023, 7, 1))}, nil, asOf)

	require.Len(t, cycles, 2)
	for _, c := range cycles {
		assert.Empty(t, c.Curve)
		assert.Equal(t, models.Peak{}, c.Peak)
		assert.Zero(t, c.AverageKg)
		assert.Zero(t, c.TotalDays)
		assert.Equal(t, models.LactationActive, c.Status)
	}

	assert.Nil(t, BuildCycles(nil, []models.Weighing{milk(day(2023, 1, 5), 1)}, asOf))
}

func TestBuildCyclesPartitionIsComplete(t *testing.T) {
	births := []models.Parturition{birth(day(2022, 3, 10)), birth(day(2022, 12, 1)), birth(day(2023, 9, 15))}

	var weighings []models.Weighing
	for d := day(2022, 3, 10); d.Before(asOf); d = d.AddDate(0, 0, 7) {
		weighings = append(weighings, milk(d, 1))
	}
	weighings = append(weighings, milk(day(2022, 12, 1), 4), milk(day(2023, 9, 15), 5))

	cycles := BuildCycles(births, weighings, asOf)

	total := 0
	for i, c := range cycles {
		total += len(c.Curve)
		for _, p := range c.Curve {
			at := c.ParturitionDate.AddDate(0, 0, p.X)
			assert.False(t, at.Before(c.ParturitionDate), "cycle %d", i)
			if !c.IsOpen() {
				assert.True(t, at.Before(c.EndDate), "cycle %d is half-open", i)
			}
		}
	}
	assert.Equal(t, len(weighings), total)

	assert.Equal(t, models.CurvePoint{X: 0, Kg: 4}, findDEL(cycles[1].Curve, 0))
	assert.Equal(t, models.CurvePoint{X: 0, Kg: 5}, findDEL(cycles[2].Curve, 0))
}

func findDEL(curve []models.CurvePoint, del int) models.CurvePoint {
	for _, p := range curve {
		if p.X == del && p.Kg > 1 {
			return p
		}
	}
	return models.CurvePoint{}
}

func TestBuildCyclesIgnoresWeighingsBeforeFirstBirth(t *testing.T) {
	cycles := BuildCycles([]models.Parturition{birth(day(2023, 1, 1))}, []models.Weighing{milk(day(2022, 12, 31), 1)}, asOf)

	require.Len(t, cycles, 1)
	assert.Empty(t, cycles[0].Curve)
}

func TestBuildCyclesOpenCycleEndsAtAsOf(t *testing.T) {
	births := []models.Parturition{birth(day(2023, 1, 1)), birth(day(2023, 7, 1))}
	weighings := []models.Weighing{
		milk(day(2023, 8, 1), 2),
		milk(day(2023, 9, 1), 7),
		milk(day(2024, 1, 1), 9),
	}

	cycles := BuildCycles(births, weighings, day(2023, 9, 1))

	require.Len(t, cycles, 2)
	open := cycles[1]
	assert.Equal(t, []models.CurvePoint{{X: 31, Kg: 2}}, open.Curve)
	assert.Equal(t, models.Peak{Kg: 2, DEL: 31}, open.Peak)
	assert.Equal(t, 31, open.TotalDays)
	assert.Equal(t, 62, open.DaysInMilk)
	assert.LessOrEqual(t, open.TotalDays, open.DaysInMilk)
}

func TestBuildCyclesKeepsEveryWeighingOfTheCall(t *testing.T) {
	births := []models.Parturition{{GoatID: "G", Date: day(2023, 1, 1)}}
	weighings := []models.Weighing{
		{AnimalID: "X", Date: day(2023, 2, 1), Kg: 1.5},
		{AnimalID: "G", Date: day(2023, 3, 1), Kg: 2},
	}

	cycles := BuildCycles(births, weighings, asOf)

	require.Len(t, cycles, 1)
	assert.Equal(t, []models.CurvePoint{{X: 31, Kg: 1.5}, {X: 59, Kg: 2}}, cycles[0].Curve)
	assert.Equal(t, 2, cycles[0].WeighingsInCycle)
}

func TestIntervals(t *testing.T) {
	births := []models.Parturition{birth(day(2023, 7, 1)), birth(day(2023, 1, 1)), birth(day(2024, 1, 1))}

	assert.Equal(t, []int{181, 184}, Intervals(births))
	assert.Empty(t, Intervals(births[:1]))
	assert.Empty(t, Intervals(nil))
}

func TestBuildHerd(t *testing.T) {
	parts := []models.Parturition{
		birth(day(2023, 1, 1)),
		{GoatID: "C2", Date: day(2023, 2, 1)},
	}
	weighings := []models.Weighing{
		milk(day(2023, 1, 11), 2),
		{AnimalID: "C2", Date: day(2023, 2, 21), Kg: 3},
	}

	herd := BuildHerd(parts, weighings, asOf)

	require.Len(t, herd, 2)
	assert.Equal(t, []models.CurvePoint{{X: 10, Kg: 2}}, herd["C1"][0].Curve)
	assert.Equal(t, []models.CurvePoint{{X: 20, Kg: 3}}, herd["C2"][0].Curve)
}

func TestStatusWarnings(t *testing.T) {
	cycles := []models.LactationCycle{
		{Number: 1, EndDate: day(2023, 1, 1), Status: models.LactationFinalized},
		{Number: 2, EndDate: day(2024, 1, 1), Status: models.LactationDry},
		{Number: 3, Status: models.LactationActive, DryingDEL: 240},
	}

	warnings := StatusWarnings(cycles)

	assert.Equal(t, []string{
		"lactation #2 is still dry after the next kidding",
		"lactation #3 has a drying date but is still active",
	}, warnings)

	assert.Equal(t, []string{"lactation #1 has an unrecognised status"},
		StatusWarnings([]models.LactationCycle{{Number: 1, Status: models.LactationUnknown}}))
	assert.Empty(t, StatusWarnings([]models.LactationCycle{{Number: 1, Status: models.LactationDrying, DryingDEL: 200}}))
}
