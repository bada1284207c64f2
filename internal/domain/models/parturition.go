package models

import (
	"strings"
	"time"
)

// ParturitionOutcome is the recorded result of a kidding.
type ParturitionOutcome string

const (
	OutcomeUnknown         ParturitionOutcome = ""
	OutcomeNormal          ParturitionOutcome = "normal"
	OutcomeWithStillbirths ParturitionOutcome = "with_stillbirths"
	OutcomeAbortion        ParturitionOutcome = "abortion"
)

// ParseParturitionOutcome maps herd book outcome labels.
func ParseParturitionOutcome(raw string) ParturitionOutcome {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "normal", "vivo", "vivos":
		return OutcomeNormal
	case "con mortinatos", "mortinato", "mortinatos", "with stillbirths", "withstillbirths", "with_stillbirths":
		return OutcomeWithStillbirths
	case "aborto", "abortion":
		return OutcomeAbortion
	default:
		return OutcomeUnknown
	}
}

// ProvesMaternity reports outcomes that count as maternity evidence.
func (o ParturitionOutcome) ProvesMaternity() bool {
	return o == OutcomeNormal || o == OutcomeWithStillbirths || o == OutcomeAbortion
}

// LactationStatus is the state of the lactation opened by a parturition. It
// moves active -> drying -> dry -> finalized; transitions are recorded outside
// this module and only read here.
type LactationStatus string

const (
	LactationUnknown   LactationStatus = "unknown"
	LactationActive    LactationStatus = "active"
	LactationDrying    LactationStatus = "drying"
	LactationDry       LactationStatus = "dry"
	LactationFinalized LactationStatus = "finalized"
)

var lactationOrder = map[LactationStatus]int{
	LactationActive:    0,
	LactationDrying:    1,
	LactationDry:       2,
	LactationFinalized: 3,
}

// ParseLactationStatus maps stored status strings; blanks are active and
// anything else is kept as unknown rather than rejected.
func ParseLactationStatus(raw string) LactationStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "active", "activa":
		return LactationActive
	case "drying", "secando":
		return LactationDrying
	case "dry", "seca":
		return LactationDry
	case "finalized", "finalizada":
		return LactationFinalized
	default:
		return LactationUnknown
	}
}

// IsTerminal reports the finalized state.
func (s LactationStatus) IsTerminal() bool {
	return s == LactationFinalized
}

// CanTransitionTo reports whether next is the single forward step from s.
func (s LactationStatus) CanTransitionTo(next LactationStatus) bool {
	from, ok := lactationOrder[s]
	if !ok {
		return false
	}
	to, ok := lactationOrder[next]
	if !ok {
		return false
	}
	return to == from+1
}

// Parturition is a recorded kidding of a doe.
type Parturition struct {
	GoatID          string             `json:"goat_id" bson:"goat_id"`
	Date            time.Time          `json:"parturition_date" bson:"parturition_date"`
	Outcome         ParturitionOutcome `json:"parturition_outcome" bson:"parturition_outcome"`
	Status          LactationStatus    `json:"status" bson:"status"`
	DryingStartDate time.Time          `json:"drying_start_date,omitempty" bson:"drying_start_date,omitempty"`
}
