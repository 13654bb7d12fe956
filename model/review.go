package model

import "time"

// Suggestion is a model that represents a proposed translation awaiting review.
type Suggestion struct {
	ID        uint64    `json:"id"`
	UnitID    uint64    `json:"unitId"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a model that represents a reviewer note attached to a unit.
type Comment struct {
	ID        uint64    `json:"id"`
	UnitID    uint64    `json:"unitId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
