package models

import "strings"

// Category is the zootechnic life stage of an animal.
type Category string

const (
	CategoryDoe       Category = "doe"
	CategoryDoeling   Category = "doeling"
	CategoryKidFemale Category = "kid_female"
	CategoryKidMale   Category = "kid_male"
	CategoryBuckling  Category = "buckling"
	CategoryBuck      Category = "buck"
)

// AllCategories lists every category in display order.
func AllCategories() []Category {
	return []Category{
		CategoryDoe,
		CategoryDoeling,
		CategoryKidFemale,
		CategoryBuck,
		CategoryBuckling,
		CategoryKidMale,
	}
}

var categoryLabels = map[Category]string{
	CategoryDoe:       "Cabra",
	CategoryDoeling:   "Cabritona",
	CategoryKidFemale: "Cabrita",
	CategoryKidMale:   "Cabrito",
	CategoryBuckling:  "Macho de Levante",
	CategoryBuck:      "Reproductor",
}

// Label returns the herd book label for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ParseCategory accepts a category id or its herd book label, ignoring case.
func ParseCategory(raw string) (Category, bool) {
	value := strings.TrimSpace(raw)
	for _, c := range AllCategories() {
		if strings.EqualFold(value, string(c)) || strings.EqualFold(value, c.Label()) {
			return c, true
		}
	}
	return "", false
}

// IsAdult reports breeding-proven categories.
func (c Category) IsAdult() bool {
	return c == CategoryDoe || c == CategoryBuck
}

// StageLabel is the closed interpretation of the free-text lifecycle stage an
// operator last saved for an animal.
type StageLabel int

const (
	StageLabelUnknown StageLabel = iota
	StageLabelDoe
	StageLabelDoeling
	StageLabelKidFemale
	StageLabelKidMale
	StageLabelBuckling
	StageLabelBuck
)

// ParseStageLabel maps a saved lifecycle stage to a StageLabel using the same
// case-sensitive substring rules the herd book always applied:
//
//   - "Cabra" without "Cabrit" is an adult doe ("Cabra", "Cabra Lechera");
//   - "Cabritona" is a doeling (checked before "Cabrita");
//   - "Cabrita" / "Cabrito" are kids;
//   - "Levante" is a buckling;
//   - "Reproductor" or "Semental" is a buck.
//
// Stored category names ("doeling", "Buck", ...) are matched exactly,
// ignoring case.
func ParseStageLabel(raw string) StageLabel {
	switch {
	case strings.Contains(raw, "Cabra") && !strings.Contains(raw, "Cabrit"):
		return StageLabelDoe
	case strings.Contains(raw, "Cabritona"):
		return StageLabelDoeling
	case strings.Contains(raw, "Cabrita"):
		return StageLabelKidFemale
	case strings.Contains(raw, "Cabrito"):
		return StageLabelKidMale
	case strings.Contains(raw, "Levante"):
		return StageLabelBuckling
	case strings.Contains(raw, "Reproductor"), strings.Contains(raw, "Semental"):
		return StageLabelBuck
	default:
		return stageFromCategory(raw)
	}
}

var categoryStages = map[Category]StageLabel{
	CategoryDoe:       StageLabelDoe,
	CategoryDoeling:   StageLabelDoeling,
	CategoryKidFemale: StageLabelKidFemale,
	CategoryKidMale:   StageLabelKidMale,
	CategoryBuckling:  StageLabelBuckling,
	CategoryBuck:      StageLabelBuck,
}

func stageFromCategory(raw string) StageLabel {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")
	if stage, ok := categoryStages[Category(normalized)]; ok {
		return stage
	}
	return StageLabelUnknown
}
