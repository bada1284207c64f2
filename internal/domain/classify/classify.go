// Package classify infers the zootechnic category of an animal from the
// evidence recorded for it. Stronger evidence (production, parentage) always
// wins over operator labels, and labels win over age thresholds.
package classify

import (
	"strings"
	"time"

	"github.com/mamadbah2/goatherd/internal/domain/agecalc"
	"github.com/mamadbah2/goatherd/internal/domain/models"
)

const (
	doeMinMonths      = 20
	doelingMinMonths  = 8
	buckOverMonths    = 12
	bucklingMinMonths = 8
)

var milkingAreaMarkers = []string{"ordeño", "ordeno", "milking"}

// Categorize returns the category of animal as of the given date. Only the
// parturitions whose GoatID matches the animal are considered. A nil index
// means no herd was supplied, so parentage evidence is absent.
func Categorize(animal models.Animal, parturitions []models.Parturition, index *ParentIndex, asOf time.Time) models.Category {
	months := agecalc.AgeInMonths(animal.BirthDate, asOf)
	label := models.ParseStageLabel(animal.LifecycleStage)

	if animal.Sex == models.SexMale {
		return categorizeMale(animal, index, months, label)
	}
	return categorizeFemale(animal, parturitions, index, months, label)
}

func categorizeFemale(animal models.Animal, parturitions []models.Parturition, index *ParentIndex, months int, label models.StageLabel) models.Category {
	switch {
	case isProductive(animal):
		return models.CategoryDoe
	case hasMaternity(animal.ID, parturitions), index.HasOffspringAsDam(animal.ID):
		return models.CategoryDoe
	case label == models.StageLabelDoe:
		return models.CategoryDoe
	case months >= doeMinMonths:
		return models.CategoryDoe
	case months >= doelingMinMonths:
		return models.CategoryDoeling
	case animal.HasWeaningRecord(), label == models.StageLabelDoeling:
		return models.CategoryDoeling
	default:
		return models.CategoryKidFemale
	}
}

func categorizeMale(animal models.Animal, index *ParentIndex, months int, label models.StageLabel) models.Category {
	switch {
	case index.HasOffspringAsSire(animal.ID):
		return models.CategoryBuck
	case months > buckOverMonths:
		return models.CategoryBuck
	case label == models.StageLabelBuck:
		return models.CategoryBuck
	case animal.HasWeaningRecord(), label == models.StageLabelBuckling, months >= bucklingMinMonths:
		return models.CategoryBuckling
	default:
		return models.CategoryKidMale
	}
}

func isProductive(animal models.Animal) bool {
	if animal.ReproductiveStatus.IsProductive() {
		return true
	}
	location := strings.ToLower(animal.Location)
	for _, marker := range milkingAreaMarkers {
		if strings.Contains(location, marker) {
			return true
		}
	}
	return false
}

func hasMaternity(id string, parturitions []models.Parturition) bool {
	for _, p := range parturitions {
		if p.GoatID == id && p.Outcome.ProvesMaternity() {
			return true
		}
	}
	return false
}

// CategorizeHerd classifies every animal of a snapshot, building the parent
// index once.
func CategorizeHerd(herd []models.Animal, parturitions []models.Parturition, asOf time.Time) map[string]models.Category {
	index := NewParentIndex(herd)

	byGoat := make(map[string][]models.Parturition)
	for _, p := range parturitions {
		byGoat[p.GoatID] = append(byGoat[p.GoatID], p)
	}

	out := make(map[string]models.Category, len(herd))
	for _, a := range herd {
		out[a.ID] = Categorize(a, byGoat[a.ID], index, asOf)
	}
	return out
}
