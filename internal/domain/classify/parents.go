package classify

import "github.com/mamadbah2/goatherd/internal/domain/models"

// ParentIndex maps parent ids to the ids of their recorded children. It is
// built once per herd snapshot and must be rebuilt when the herd changes.
type ParentIndex struct {
	byDam  map[string][]string
	bySire map[string][]string
}

// NewParentIndex indexes every herd member by its dam and sire.
func NewParentIndex(herd []models.Animal) *ParentIndex {
	idx := &ParentIndex{
		byDam:  make(map[string][]string),
		bySire: make(map[string][]string),
	}
	for _, a := range herd {
		if a.MotherID != "" {
			idx.byDam[a.MotherID] = append(idx.byDam[a.MotherID], a.ID)
		}
		if a.FatherID != "" {
			idx.bySire[a.FatherID] = append(idx.bySire[a.FatherID], a.ID)
		}
	}
	return idx
}

// HasOffspringAsDam reports whether any herd member names id as its mother.
func (p *ParentIndex) HasOffspringAsDam(id string) bool {
	return p != nil && id != "" && len(p.byDam[id]) > 0
}

// HasOffspringAsSire reports whether any herd member names id as its father.
func (p *ParentIndex) HasOffspringAsSire(id string) bool {
	return p != nil && id != "" && len(p.bySire[id]) > 0
}

// ChildrenOfDam returns the ids of the animals born to the given doe.
func (p *ParentIndex) ChildrenOfDam(id string) []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.byDam[id]...)
}
