package models

import (
	"strings"
	"time"
)

// Sex of an animal.
type Sex string

const (
	SexFemale Sex = "female"
	SexMale   Sex = "male"
)

// ParseSex maps the herd book labels ("Hembra", "Macho", "F", "M") to a Sex.
// Anything unrecognised is treated as female, which is how the herd book
// defaults new entries.
func ParseSex(raw string) Sex {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "macho", "male", "m":
		return SexMale
	default:
		return SexFemale
	}
}

// AnimalStatus is the administrative state of an animal in the herd.
type AnimalStatus string

const (
	StatusActive AnimalStatus = "active"
	StatusSold   AnimalStatus = "sold"
	StatusDead   AnimalStatus = "dead"
	StatusCulled AnimalStatus = "culled"
)

// ParseAnimalStatus maps legacy status labels. Blank values mean active.
func ParseAnimalStatus(raw string) AnimalStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "vendido", "vendida", "sold":
		return StatusSold
	case "muerto", "muerta", "dead":
		return StatusDead
	case "descartado", "descartada", "culled":
		return StatusCulled
	default:
		return StatusActive
	}
}

// ReproductiveStatus is the operational reproductive state recorded by the
// herd manager.
type ReproductiveStatus string

const (
	ReproNone      ReproductiveStatus = ""
	ReproMilking   ReproductiveStatus = "milking"
	ReproLactating ReproductiveStatus = "lactating"
	ReproDriedOff  ReproductiveStatus = "dried_off"
	ReproPregnant  ReproductiveStatus = "pregnant"
	ReproInService ReproductiveStatus = "in_service"
	ReproEmpty     ReproductiveStatus = "empty"
	ReproOther     ReproductiveStatus = "other"
)

var reproductiveLabels = map[string]ReproductiveStatus{
	"":            ReproNone,
	"en ordeño":   ReproMilking,
	"en ordeno":   ReproMilking,
	"ordeño":      ReproMilking,
	"milking":     ReproMilking,
	"lactando":    ReproLactating,
	"lactante":    ReproLactating,
	"lactating":   ReproLactating,
	"seca":        ReproDriedOff,
	"secada":      ReproDriedOff,
	"dried-off":   ReproDriedOff,
	"dried off":   ReproDriedOff,
	"preñada":     ReproPregnant,
	"prenada":     ReproPregnant,
	"pregnant":    ReproPregnant,
	"en servicio": ReproInService,
	"en monta":    ReproInService,
	"in-service":  ReproInService,
	"in service":  ReproInService,
	"vacía":       ReproEmpty,
	"vacia":       ReproEmpty,
	"empty":       ReproEmpty,
}

// ParseReproductiveStatus maps the free-text reproductive status of the herd
// book to the closed set. Unknown labels map to ReproOther so they are never
// mistaken for a neutral status.
func ParseReproductiveStatus(raw string) ReproductiveStatus {
	if status, ok := reproductiveLabels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return status
	}
	return ReproOther
}

// IsProductive reports statuses that prove the animal is (or was just) in milk.
func (s ReproductiveStatus) IsProductive() bool {
	return s == ReproMilking || s == ReproLactating || s == ReproDriedOff
}

// IsNeutral reports statuses that allow a first service to be scheduled.
func (s ReproductiveStatus) IsNeutral() bool {
	return s == ReproNone || s == ReproEmpty
}

// Animal is a herd book entry. Dates are UTC midnights; a zero time means the
// date is unknown.
type Animal struct {
	ID                 string             `json:"id" bson:"id"`
	Sex                Sex                `json:"sex" bson:"sex"`
	BirthDate          time.Time          `json:"birth_date" bson:"birth_date"`
	BirthWeight        float64            `json:"birth_weight,omitempty" bson:"birth_weight,omitempty"`
	LifecycleStage     string             `json:"lifecycle_stage,omitempty" bson:"lifecycle_stage,omitempty"`
	ReproductiveStatus ReproductiveStatus `json:"reproductive_status,omitempty" bson:"reproductive_status,omitempty"`
	Location           string             `json:"location,omitempty" bson:"location,omitempty"`
	MotherID           string             `json:"mother_id,omitempty" bson:"mother_id,omitempty"`
	FatherID           string             `json:"father_id,omitempty" bson:"father_id,omitempty"`
	WeaningDate        time.Time          `json:"weaning_date,omitempty" bson:"weaning_date,omitempty"`
	WeaningWeight      float64            `json:"weaning_weight,omitempty" bson:"weaning_weight,omitempty"`
	IsReference        bool               `json:"is_reference" bson:"is_reference"`
	Status             AnimalStatus       `json:"status" bson:"status"`
}

// IsManaged reports whether the animal takes part in herd-management logic.
// Reference animals are pedigree stubs and inactive animals have left the herd.
func (a Animal) IsManaged() bool {
	return !a.IsReference && a.Status == StatusActive
}

// HasWeaningRecord reports whether a weaning date was recorded.
func (a Animal) HasWeaningRecord() bool {
	return !a.WeaningDate.IsZero()
}
