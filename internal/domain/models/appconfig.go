package models

// AppConfig holds the herd-wide thresholds every growth computation reads. It
// is passed explicitly into engine calls and treated as immutable for the
// duration of one computation.
type AppConfig struct {
	BirthWeightKg float64 `json:"birth_weight_kg" yaml:"birth_weight_kg"`

	WeaningAgeDays  int     `json:"weaning_age_days" yaml:"weaning_age_days"`
	WeaningWeightKg float64 `json:"weaning_weight_kg" yaml:"weaning_weight_kg"`

	Weight90Kg      float64 `json:"weight_90_kg" yaml:"weight_90_kg"`
	Weight180Kg     float64 `json:"weight_180_kg" yaml:"weight_180_kg"`
	Weight270Kg     float64 `json:"weight_270_kg" yaml:"weight_270_kg"`
	MaleWeight90Kg  float64 `json:"male_weight_90_kg" yaml:"male_weight_90_kg"`
	MaleWeight180Kg float64 `json:"male_weight_180_kg" yaml:"male_weight_180_kg"`
	MaleWeight270Kg float64 `json:"male_weight_270_kg" yaml:"male_weight_270_kg"`

	FirstServiceAgeDays  int     `json:"first_service_age_days" yaml:"first_service_age_days"`
	FirstServiceWeightKg float64 `json:"first_service_weight_kg" yaml:"first_service_weight_kg"`

	// GrowthAlertThreshold is the target ratio under which growth is flagged.
	GrowthAlertThreshold float64 `json:"growth_alert_threshold" yaml:"growth_alert_threshold"`
}

// DefaultAppConfig returns the thresholds used when the herd has not tuned them.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		BirthWeightKg:        3.5,
		WeaningAgeDays:       60,
		WeaningWeightKg:      12,
		Weight90Kg:           15,
		Weight180Kg:          22,
		Weight270Kg:          28,
		MaleWeight90Kg:       16,
		MaleWeight180Kg:      24,
		MaleWeight270Kg:      30,
		FirstServiceAgeDays:  300,
		FirstServiceWeightKg: 30,
		GrowthAlertThreshold: 0.85,
	}
}

// WithDefaults returns a copy where every zero or negative field is replaced by
// its default.
func (c AppConfig) WithDefaults() AppConfig {
	d := DefaultAppConfig()
	out := c
	fillFloat(&out.BirthWeightKg, d.BirthWeightKg)
	fillInt(&out.WeaningAgeDays, d.WeaningAgeDays)
	fillFloat(&out.WeaningWeightKg, d.WeaningWeightKg)
	fillFloat(&out.Weight90Kg, d.Weight90Kg)
	fillFloat(&out.Weight180Kg, d.Weight180Kg)
	fillFloat(&out.Weight270Kg, d.Weight270Kg)
	fillFloat(&out.MaleWeight90Kg, d.MaleWeight90Kg)
	fillFloat(&out.MaleWeight180Kg, d.MaleWeight180Kg)
	fillFloat(&out.MaleWeight270Kg, d.MaleWeight270Kg)
	fillInt(&out.FirstServiceAgeDays, d.FirstServiceAgeDays)
	fillFloat(&out.FirstServiceWeightKg, d.FirstServiceWeightKg)
	fillFloat(&out.GrowthAlertThreshold, d.GrowthAlertThreshold)
	return out
}

func fillFloat(v *float64, fallback float64) {
	if *v <= 0 {
		*v = fallback
	}
}

func fillInt(v *int, fallback int) {
	if *v <= 0 {
		*v = fallback
	}
}
