package models

import (
	"strings"
	"time"
)

// Weighing is a single body or milk weighing. Both kinds share this shape and
// are told apart by the collection they come from.
type Weighing struct {
	AnimalID string    `json:"animal_id" bson:"animal_id"`
	Date     time.Time `json:"date" bson:"date"`
	Kg       float64   `json:"kg" bson:"kg"`
}

// EventKind classifies the free-text event tags of the herd log.
type EventKind string

const (
	EventOther         EventKind = "other"
	EventWeaning       EventKind = "weaning"
	EventServiceWeight EventKind = "service_weight"
)

// ParseEventKind maps herd log tags such as "Destete" or "Service-Weight".
func ParseEventKind(raw string) EventKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "weaning", "destete":
		return EventWeaning
	case "service-weight", "service weight", "peso de servicio", "peso de monta":
		return EventServiceWeight
	default:
		return EventOther
	}
}

// Event is an entry of the herd event log.
type Event struct {
	AnimalID string    `json:"animal_id" bson:"animal_id"`
	Date     time.Time `json:"date" bson:"date"`
	Type     string    `json:"type" bson:"type"`
	Value    float64   `json:"value,omitempty" bson:"value,omitempty"`
}

// Kind returns the parsed event kind.
func (e Event) Kind() EventKind {
	return ParseEventKind(e.Type)
}
