package model

// Unit is a model that represents one translatable string of a component.
// An empty language marks a source unit.
type Unit struct {
	ID          uint64 `json:"id"`
	ComponentID uint64 `json:"componentId"`
	Language    string `json:"language"`
	IDHash      string `json:"idHash"`
	Source      string `json:"source"`
	Target      string `json:"target"`
	Translated  bool   `json:"translated"`
}

// IndexEntry is a model that represents one stored record of a fulltext partition.
type IndexEntry struct {
	UnitID   uint64 `json:"unitId"`
	Language string `json:"language"`
}
