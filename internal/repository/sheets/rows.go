package sheets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mamadbah2/goatherd/internal/domain/agecalc"
	"github.com/mamadbah2/goatherd/internal/domain/models"
)

// Column layout of each herd book sheet. The first row is a header.
const (
	AnimalsRange      = "Animals!A2:M"
	ParturitionsRange = "Parturitions!A2:E"
	BodyWeightsRange  = "BodyWeights!A2:C"
	MilkWeightsRange  = "MilkWeights!A2:C"
	EventsRange       = "Events!A2:D"
	ReportsRange      = "Reports!A:J"
)

var (
	errMissingID   = errors.New("missing id")
	errMissingDate = errors.New("missing or invalid date")
)

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[i]))
}

func parseFloat(value string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
}

// optionalFloat returns 0 for blank or malformed cells.
func optionalFloat(value string) float64 {
	v, err := parseFloat(value)
	if err != nil {
		return 0
	}
	return v
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "si", "sí", "x", "1":
		return true
	default:
		return false
	}
}

// parseAnimal reads: id, sex, birth date, birth weight, lifecycle stage,
// reproductive status, location, mother id, father id, weaning date, weaning
// weight, reference flag, status.
func parseAnimal(row []interface{}) (models.Animal, error) {
	id := cell(row, 0)
	if id == "" {
		return models.Animal{}, errMissingID
	}

	birth, _ := agecalc.ParseDate(cell(row, 2))
	weaning, _ := agecalc.ParseDate(cell(row, 9))

	return models.Animal{
		ID:                 id,
		Sex:                models.ParseSex(cell(row, 1)),
		BirthDate:          birth,
		BirthWeight:        optionalFloat(cell(row, 3)),
		LifecycleStage:     cell(row, 4),
		ReproductiveStatus: models.ParseReproductiveStatus(cell(row, 5)),
		Location:           cell(row, 6),
		MotherID:           cell(row, 7),
		FatherID:           cell(row, 8),
		WeaningDate:        weaning,
		WeaningWeight:      optionalFloat(cell(row, 10)),
		IsReference:        parseBool(cell(row, 11)),
		Status:             models.ParseAnimalStatus(cell(row, 12)),
	}, nil
}

// parseParturition reads: goat id, date, outcome, lactation status, drying start.
func parseParturition(row []interface{}) (models.Parturition, error) {
	id := cell(row, 0)
	if id == "" {
		return models.Parturition{}, errMissingID
	}
	date, ok := agecalc.ParseDate(cell(row, 1))
	if !ok {
		return models.Parturition{}, errMissingDate
	}
	drying, _ := agecalc.ParseDate(cell(row, 4))

	return models.Parturition{
		GoatID:          id,
		Date:            date,
		Outcome:         models.ParseParturitionOutcome(cell(row, 2)),
		Status:          models.ParseLactationStatus(cell(row, 3)),
		DryingStartDate: drying,
	}, nil
}

// parseWeighing reads: animal id, date, kg.
func parseWeighing(row []interface{}) (models.Weighing, error) {
	id := cell(row, 0)
	if id == "" {
		return models.Weighing{}, errMissingID
	}
	date, ok := agecalc.ParseDate(cell(row, 1))
	if !ok {
		return models.Weighing{}, errMissingDate
	}
	kg, err := parseFloat(cell(row, 2))
	if err != nil {
		return models.Weighing{}, fmt.Errorf("invalid kg: %w", err)
	}
	return models.Weighing{AnimalID: id, Date: date, Kg: kg}, nil
}

// parseEvent reads: animal id, date, type, optional value.
func parseEvent(row []interface{}) (models.Event, error) {
	id := cell(row, 0)
	if id == "" {
		return models.Event{}, errMissingID
	}
	date, ok := agecalc.ParseDate(cell(row, 1))
	if !ok {
		return models.Event{}, errMissingDate
	}
	return models.Event{
		AnimalID: id,
		Date:     date,
		Type:     cell(row, 2),
		Value:    optionalFloat(cell(row, 3)),
	}, nil
}

// ReportRow flattens a herd report into the Reports sheet columns.
func ReportRow(report models.HerdReport) []interface{} {
	counts := report.CategoryCounts
	return []interface{}{
		report.AsOf.Format("2006-01-02"),
		report.ManagedAnimals,
		counts[string(models.CategoryDoe)],
		counts[string(models.CategoryDoeling)],
		counts[string(models.CategoryKidFemale)] + counts[string(models.CategoryKidMale)],
		counts[string(models.CategoryBuck)] + counts[string(models.CategoryBuckling)],
		len(report.ReadyToWean),
		len(report.ReadyToServe),
		len(report.GrowthAlerts),
		report.GDP.Mean,
	}
}
