package models

import "time"

// GrowthBand classifies a weight-to-target ratio.
type GrowthBand string

const (
	GrowthSuperior    GrowthBand = "superior"
	GrowthOnTarget    GrowthBand = "on_target"
	GrowthBelowTarget GrowthBand = "below_target"
	GrowthAlert       GrowthBand = "alert"
)

// MilestoneStatus is the outcome of a single growth checkpoint.
type MilestoneStatus string

const (
	MilestoneMet     MilestoneStatus = "met"
	MilestoneClose   MilestoneStatus = "close"
	MilestoneMissed  MilestoneStatus = "missed"
	MilestonePending MilestoneStatus = "pending"
)

// Milestones groups the fixed checkpoints of a young animal.
type Milestones struct {
	Weaning MilestoneStatus `json:"weaning" bson:"weaning"`
	D90     MilestoneStatus `json:"d90" bson:"d90"`
	D180    MilestoneStatus `json:"d180" bson:"d180"`
	D270    MilestoneStatus `json:"d270" bson:"d270"`
	Service MilestoneStatus `json:"service" bson:"service"`
}

// GrowthStatus is the derived growth view of one animal.
type GrowthStatus struct {
	AnimalID          string     `json:"animal_id" bson:"animal_id"`
	AgeDays           int        `json:"age_days" bson:"age_days"`
	CurrentWeight     float64    `json:"current_weight" bson:"current_weight"`
	CurrentWeightDate time.Time  `json:"current_weight_date,omitempty" bson:"current_weight_date,omitempty"`
	TargetWeight      float64    `json:"target_weight" bson:"target_weight"`
	Deviation         float64    `json:"deviation" bson:"deviation"`
	Band              GrowthBand `json:"band" bson:"band"`
	Score             int        `json:"score" bson:"score"`
	IsReadyForWeaning bool       `json:"is_ready_for_weaning" bson:"is_ready_for_weaning"`
	IsReadyForService bool       `json:"is_ready_for_service" bson:"is_ready_for_service"`
	Milestones        Milestones `json:"milestones" bson:"milestones"`
}
