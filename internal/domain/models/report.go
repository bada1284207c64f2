package models

import "time"

// HerdReport represents the aggregated herd analytics stored in MongoDB and
// served over the API.
type HerdReport struct {
	GeneratedAt    time.Time         `bson:"generated_at" json:"generated_at"`
	AsOf           time.Time         `bson:"as_of" json:"as_of"`
	TotalAnimals   int               `bson:"total_animals" json:"total_animals"`
	ManagedAnimals int               `bson:"managed_animals" json:"managed_animals"`
	CategoryCounts map[string]int    `bson:"category_counts" json:"category_counts"`
	ReadyToWean    []string          `bson:"ready_to_wean" json:"ready_to_wean"`
	ReadyToServe   []string          `bson:"ready_to_serve" json:"ready_to_serve"`
	GrowthAlerts   []string          `bson:"growth_alerts" json:"growth_alerts"`
	GDP            MetricSummary     `bson:"gdp" json:"gdp"`
	Deviation      MetricSummary     `bson:"deviation" json:"deviation"`
	Animals        []AnimalReportRow `bson:"animals" json:"animals"`
}

// MetricSummary is the population distribution of one per-animal metric.
type MetricSummary struct {
	Count              int     `bson:"count" json:"count"`
	Mean               float64 `bson:"mean" json:"mean"`
	StdDev             float64 `bson:"std_dev" json:"std_dev"`
	PoorThreshold      float64 `bson:"poor_threshold" json:"poor_threshold"`
	ExcellentThreshold float64 `bson:"excellent_threshold" json:"excellent_threshold"`
	Poor               int     `bson:"poor" json:"poor"`
	Average            int     `bson:"average" json:"average"`
	Outstanding        int     `bson:"outstanding" json:"outstanding"`
}

// AnimalReportRow is the per-animal line of a herd report.
type AnimalReportRow struct {
	ID            string     `bson:"id" json:"id"`
	Category      Category   `bson:"category" json:"category"`
	Label         string     `bson:"label" json:"label"`
	AgeDays       int        `bson:"age_days" json:"age_days"`
	Age           string     `bson:"age" json:"age"`
	CurrentWeight float64    `bson:"current_weight" json:"current_weight"`
	Band          GrowthBand `bson:"band,omitempty" json:"band,omitempty"`
	GDP           float64    `bson:"gdp,omitempty" json:"gdp,omitempty"`
	GDPBand       string     `bson:"gdp_band,omitempty" json:"gdp_band,omitempty"`
	GDPPercentile float64    `bson:"gdp_percentile,omitempty" json:"gdp_percentile,omitempty"`
}
