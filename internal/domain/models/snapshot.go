package models

// HerdSnapshot is one consistent read of the herd book collections.
type HerdSnapshot struct {
	Animals      []Animal
	Parturitions []Parturition
	BodyWeights  []Weighing
	MilkWeights  []Weighing
	Events       []Event
}

// Animal returns the animal with the given id.
func (s HerdSnapshot) Animal(id string) (Animal, bool) {
	for _, a := range s.Animals {
		if a.ID == id {
			return a, true
		}
	}
	return Animal{}, false
}

// ParturitionsOf returns the parturitions recorded for one goat.
func (s HerdSnapshot) ParturitionsOf(id string) []Parturition {
	var out []Parturition
	for _, p := range s.Parturitions {
		if p.GoatID == id {
			out = append(out, p)
		}
	}
	return out
}

// BodyWeightsOf returns the body weighings of one animal.
func (s HerdSnapshot) BodyWeightsOf(id string) []Weighing {
	return weighingsOf(s.BodyWeights, id)
}

// MilkWeightsOf returns the milk weighings of one animal.
func (s HerdSnapshot) MilkWeightsOf(id string) []Weighing {
	return weighingsOf(s.MilkWeights, id)
}

// EventsOf returns the logged events of one animal.
func (s HerdSnapshot) EventsOf(id string) []Event {
	var out []Event
	for _, e := range s.Events {
		if e.AnimalID == id {
			out = append(out, e)
		}
	}
	return out
}

func weighingsOf(all []Weighing, id string) []Weighing {
	var out []Weighing
	for _, w := range all {
		if w.AnimalID == id {
			out = append(out, w)
		}
	}
	return out
}
