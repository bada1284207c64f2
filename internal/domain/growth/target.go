// Package growth holds the growth target model, the weighing series
// interpolator and the milestone evaluator built on top of them.
package growth

import (
	"math"
	"sort"

	"github.com/mamadbah2/goatherd/internal/domain/models"
)

const (
	superiorRatio = 1.05
	onTargetRatio = 0.95
)

// Anchor is a target weight at a given age.
type Anchor struct {
	AgeDays  int
	WeightKg float64
}

// Anchors returns the target curve for the given sex sorted by age. Zero or
// unset config values fall back to the herd defaults.
func Anchors(sex models.Sex, cfg models.AppConfig) []Anchor {
	cfg = cfg.WithDefaults()

	w90, w180, w270 := cfg.Weight90Kg, cfg.Weight180Kg, cfg.Weight270Kg
	if sex == models.SexMale {
		w90, w180, w270 = cfg.MaleWeight90Kg, cfg.MaleWeight180Kg, cfg.MaleWeight270Kg
	}

	anchors := []Anchor{
		{AgeDays: 0, WeightKg: cfg.BirthWeightKg},
		{AgeDays: cfg.WeaningAgeDays, WeightKg: cfg.WeaningWeightKg},
		{AgeDays: 90, WeightKg: w90},
		{AgeDays: 180, WeightKg: w180},
		{AgeDays: 270, WeightKg: w270},
		{AgeDays: cfg.FirstServiceAgeDays, WeightKg: cfg.FirstServiceWeightKg},
	}
	sort.SliceStable(anchors, func(i, j int) bool { return anchors[i].AgeDays < anchors[j].AgeDays })
	return anchors
}

// TargetWeightAtAge interpolates the target curve linearly between anchors.
// Ages outside the curve take the weight of the nearest end anchor.
func TargetWeightAtAge(ageDays int, sex models.Sex, cfg models.AppConfig) float64 {
	anchors := Anchors(sex, cfg)

	first := anchors[0]
	if ageDays <= first.AgeDays {
		return first.WeightKg
	}

	for i := 1; i < len(anchors); i++ {
		a, b := anchors[i-1], anchors[i]
		if ageDays > b.AgeDays {
			continue
		}
		span := b.AgeDays - a.AgeDays
		if span == 0 {
			return b.WeightKg
		}
		ratio := float64(ageDays-a.AgeDays) / float64(span)
		return a.WeightKg + ratio*(b.WeightKg-a.WeightKg)
	}

	return anchors[len(anchors)-1].WeightKg
}

// TargetDeviation returns current/target, or 0 when target is not positive.
func TargetDeviation(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return current / target
}

// ClassifyDeviation bands a target deviation ratio.
func ClassifyDeviation(deviation float64, cfg models.AppConfig) models.GrowthBand {
	alert := cfg.WithDefaults().GrowthAlertThreshold
	switch {
	case deviation >= superiorRatio:
		return models.GrowthSuperior
	case deviation >= onTargetRatio:
		return models.GrowthOnTarget
	case deviation < alert:
		return models.GrowthAlert
	default:
		return models.GrowthBelowTarget
	}
}

// GrowthScore converts a deviation into a 0-100 score.
func GrowthScore(deviation float64) int {
	score := int(math.Round(deviation * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
