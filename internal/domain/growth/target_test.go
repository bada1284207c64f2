package growth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/goatherd/internal/domain/models"
)

func TestTargetWeightAtAgeDefaults(t *testing.T) {
	cfg := models.AppConfig{}

	cases := []struct {
		age  int
		sex  models.Sex
		want float64
	}{
		{-5, models.SexFemale, 3.5},
		{0, models.SexFemale, 3.5},
		{30, models.SexFemale, 7.75},
		{60, models.SexFemale, 12},
		{75, models.SexFemale, 13.5},
		{135, models.SexFemale, 18.5},
		{300, models.SexFemale, 30},
		{90, models.SexMale, 16},
		{180, models.SexMale, 24},
		{270, models.SexMale, 30},
	}

	for _, tc := range cases {
		assert.InDelta(t, tc.want, TargetWeightAtAge(tc.age, tc.sex, cfg), 1e-9, "age %d sex %s", tc.age, tc.sex)
	}
}

func TestTargetWeightIsFlatBeyondLastAnchor(t *testing.T) {
	cfg := models.DefaultAppConfig()
	anchors := Anchors(models.SexFemale, cfg)
	last := anchors[len(anchors)-1]

	for _, age := range []int{last.AgeDays, last.AgeDays + 1, 1000, 5000} {
		assert.Equal(t, last.WeightKg, TargetWeightAtAge(age, models.SexFemale, cfg))
	}
}

func TestTargetWeightIsNonDecreasing(t *testing.T) {
	cfg := models.DefaultAppConfig()

	for _, sex := range []models.Sex{models.SexFemale, models.SexMale} {
		prev := TargetWeightAtAge(0, sex, cfg)
		for age := 1; age <= 500; age++ {
			cur := TargetWeightAtAge(age, sex, cfg)
			require.GreaterOrEqual(t, cur, prev, "sex %s age %d", sex, age)
			prev = cur
		}
	}
}

func TestAnchorsAreSortedByAge(t *testing.T) {
	cfg := models.AppConfig{WeaningAgeDays: 100}

	anchors := Anchors(models.SexFemale, cfg)

	require.Len(t, anchors, 6)
	assert.Equal(t, 90, anchors[1].AgeDays)
	assert.Equal(t, 100, anchors[2].AgeDays)
	for i := 1; i < len(anchors); i++ {
		assert.LessOrEqual(t, anchors[i-1].AgeDays, anchors[i].AgeDays)
	}
}

func TestDeviationBands(t *testing.T) {
	cfg := models.AppConfig{}

	assert.Equal(t, models.GrowthSuperior, ClassifyDeviation(1.05, cfg))
	assert.Equal(t, models.GrowthOnTarget, ClassifyDeviation(1.0, cfg))
	assert.Equal(t, models.GrowthOnTarget, ClassifyDeviation(0.95, cfg))
	assert.Equal(t, models.GrowthBelowTarget, ClassifyDeviation(0.9, cfg))
	assert.Equal(t, models.GrowthBelowTarget, ClassifyDeviation(0.85, cfg))
	assert.Equal(t, models.GrowthAlert, ClassifyDeviation(0.8, cfg))
	assert.Equal(t, models.GrowthBelowTarget, ClassifyDeviation(0.8, models.AppConfig{GrowthAlertThreshold: 0.7}))
}

func TestTargetDeviationAndScore(t *testing.T) {
	assert.Equal(t, 0.0, TargetDeviation(12, 0))
	assert.InDelta(t, 0.5, TargetDeviation(5, 10), 1e-9)

	assert.Equal(t, 88, GrowthScore(0.876))
	assert.Equal(t, 100, GrowthScore(1.3))
	assert.Equal(t, 0, GrowthScore(-0.2))
}
