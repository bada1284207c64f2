package growth

import (
	"sort"
	"time"

	"github.com/mamadbah2/goatherd/internal/domain/agecalc"
	"github.com/mamadbah2/goatherd/internal/domain/models"
)

const (
	milestoneMetRatio   = 0.95
	milestoneCloseRatio = 0.85
	// pendingGraceDays is how long past a milestone day missing data stays pending.
	pendingGraceDays = 30
	serviceCloseDays = 30
	serviceGraceDays = 60

	backfillFirstWeightKg = 14
	minWeaningWeightKg    = 9.5
	serviceReadyAgeDays   = 300
)

// EvaluateServiceTiming bands the age at first service against the target.
func EvaluateServiceTiming(ageAtEvent, targetAge int) models.MilestoneStatus {
	late := ageAtEvent - targetAge
	switch {
	case late <= 0:
		return models.MilestoneMet
	case late <= serviceCloseDays:
		return models.MilestoneClose
	default:
		return models.MilestoneMissed
	}
}

// Evaluate derives the growth status of one animal from its body weighings
// and logged events. Records belonging to other animals are ignored.
func Evaluate(animal models.Animal, weighings []models.Weighing, events []models.Event, cfg models.AppConfig, asOf time.Time) models.GrowthStatus {
	cfg = cfg.WithDefaults()
	own := ownWeighings(animal.ID, weighings)
	evts := ownEvents(animal.ID, events)

	age := agecalc.AgeInDays(animal.BirthDate, asOf)
	status := models.GrowthStatus{AnimalID: animal.ID, AgeDays: age}

	status.CurrentWeight, status.CurrentWeightDate = currentWeight(animal, own)

	if age >= 0 {
		status.TargetWeight = round2(TargetWeightAtAge(age, animal.Sex, cfg))
	}
	if status.CurrentWeight > 0 && status.TargetWeight > 0 {
		dev := TargetDeviation(status.CurrentWeight, status.TargetWeight)
		status.Deviation = round2(dev)
		status.Band = ClassifyDeviation(dev, cfg)
		status.Score = GrowthScore(dev)
	}

	series := NewSeries(animal.BirthDate, animal.BirthWeight, own)
	status.Milestones = models.Milestones{
		Weaning: weightMilestone(series, age, cfg.WeaningAgeDays, TargetWeightAtAge(cfg.WeaningAgeDays, animal.Sex, cfg)),
		D90:     weightMilestone(series, age, 90, TargetWeightAtAge(90, animal.Sex, cfg)),
		D180:    weightMilestone(series, age, 180, TargetWeightAtAge(180, animal.Sex, cfg)),
		D270:    weightMilestone(series, age, 270, TargetWeightAtAge(270, animal.Sex, cfg)),
		Service: serviceMilestone(animal, own, evts, age, cfg),
	}

	status.IsReadyForWeaning = readyForWeaning(animal, own, evts, age, status.CurrentWeight, cfg)
	status.IsReadyForService = readyForService(animal, evts, age, status.CurrentWeight, cfg)

	return status
}

func weightMilestone(series Series, age, day int, target float64) models.MilestoneStatus {
	if w, ok := series.WeightAt(day); ok && target > 0 {
		ratio := w / target
		switch {
		case ratio >= milestoneMetRatio:
			return models.MilestoneMet
		case ratio >= milestoneCloseRatio:
			return models.MilestoneClose
		default:
			return models.MilestoneMissed
		}
	}
	if age > day+pendingGraceDays {
		return models.MilestoneMissed
	}
	return models.MilestonePending
}

func serviceMilestone(animal models.Animal, weighings []models.Weighing, events []models.Event, age int, cfg models.AppConfig) models.MilestoneStatus {
	target := cfg.FirstServiceAgeDays

	if e, ok := firstEvent(events, models.EventServiceWeight); ok {
		return timingAt(animal.BirthDate, e.Date, target)
	}

	for _, w := range weighings {
		if agecalc.AgeAt(animal.BirthDate, w.Date) < 0 {
			continue
		}
		if w.Kg >= cfg.FirstServiceWeightKg {
			return timingAt(animal.BirthDate, w.Date, target)
		}
	}

	if age > target+serviceGraceDays {
		return models.MilestoneMissed
	}
	return models.MilestonePending
}

func timingAt(birth, at time.Time, target int) models.MilestoneStatus {
	ageAt := agecalc.AgeAt(birth, at)
	if ageAt < 0 {
		return models.MilestonePending
	}
	return EvaluateServiceTiming(ageAt, target)
}

func readyForWeaning(animal models.Animal, weighings []models.Weighing, events []models.Event, age int, current float64, cfg models.AppConfig) bool {
	if animal.HasWeaningRecord() || !animal.IsManaged() {
		return false
	}
	if _, weaned := firstEvent(events, models.EventWeaning); weaned {
		return false
	}
	if len(weighings) > 0 && weighings[0].Kg > backfillFirstWeightKg {
		return false
	}
	return age >= cfg.WeaningAgeDays && current >= minWeaningWeightKg
}

func readyForService(animal models.Animal, events []models.Event, age int, current float64, cfg models.AppConfig) bool {
	if animal.Sex != models.SexFemale || !animal.IsManaged() {
		return false
	}
	if _, served := firstEvent(events, models.EventServiceWeight); served {
		return false
	}
	if !animal.ReproductiveStatus.IsNeutral() {
		return false
	}
	return age >= serviceReadyAgeDays && current >= cfg.FirstServiceWeightKg
}

// currentWeight returns the latest weighing, or the birth weight dated at birth.
func currentWeight(animal models.Animal, sorted []models.Weighing) (float64, time.Time) {
	if len(sorted) == 0 {
		return animal.BirthWeight, animal.BirthDate
	}
	last := sorted[len(sorted)-1]
	return last.Kg, last.Date
}

// ownWeighings returns the animal's weighings sorted by date. Weighings with no
// animal id are assumed to belong to the caller's animal.
func ownWeighings(id string, weighings []models.Weighing) []models.Weighing {
	out := make([]models.Weighing, 0, len(weighings))
	for _, w := range weighings {
		if w.AnimalID == "" || w.AnimalID == id {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func ownEvents(id string, events []models.Event) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.AnimalID == "" || e.AnimalID == id {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func firstEvent(sorted []models.Event, kind models.EventKind) (models.Event, bool) {
	for _, e := range sorted {
		if e.Kind() == kind {
			return e, true
		}
	}
	return models.Event{}, false
}
