package models

import "time"

// CurvePoint is one point of a production or growth curve. X is days in
// lactation or age in days depending on the curve.
type CurvePoint struct {
	X  int     `json:"x" bson:"x"`
	Kg float64 `json:"kg" bson:"kg"`
}

// Peak is the highest point of a lactation.
type Peak struct {
	Kg  float64 `json:"kg" bson:"kg"`
	DEL int     `json:"del" bson:"del"`
}

// LactationCycle is the reconstructed lactation opened by one parturition.
type LactationCycle struct {
	Number           int             `json:"number" bson:"number"`
	GoatID           string          `json:"goat_id" bson:"goat_id"`
	ParturitionDate  time.Time       `json:"parturition_date" bson:"parturition_date"`
	EndDate          time.Time       `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Curve            []CurvePoint    `json:"curve" bson:"curve"`
	AverageKg        float64         `json:"average_kg" bson:"average_kg"`
	Peak             Peak            `json:"peak" bson:"peak"`
	TotalDays        int             `json:"total_days" bson:"total_days"`
	DaysInMilk       int             `json:"days_in_milk" bson:"days_in_milk"`
	Status           LactationStatus `json:"status" bson:"status"`
	DryingDEL        int             `json:"drying_del,omitempty" bson:"drying_del,omitempty"`
	WeighingsInCycle int             `json:"weighings" bson:"weighings"`
}

// IsOpen reports a cycle with no following parturition.
func (c LactationCycle) IsOpen() bool {
	return c.EndDate.IsZero()
}
