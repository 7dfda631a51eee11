package model

import "time"

// StorageBox holds samples in a freezer shelf grid.
type StorageBox struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	FreezerID string    `json:"freezer_id"`
	Rows      int       `json:"rows"`
	Columns   int       `json:"columns"`
	UsedSlots int       `json:"used_slots"`
	CreatedAt time.Time `json:"created_at"`
}

// StorageBoxCreate is the request shape for adding a box.
type StorageBoxCreate struct {
	Label     string `json:"label"`
	FreezerID string `json:"freezer_id"`
	Rows      int    `json:"rows"`
	Columns   int    `json:"columns"`
}

// Freezer is a physical storage unit containing boxes.
type Freezer struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location,omitempty"`
	Temperature float64 `json:"temperature_c"`
}

// FreezerCreate is the request shape for adding a freezer.
type FreezerCreate struct {
	Name        string  `json:"name"`
	Location    string  `json:"location,omitempty"`
	Temperature float64 `json:"temperature_c"`
}

// StorageHierarchy is the freezer -> box tree used by placement pickers.
type StorageHierarchy struct {
	Freezers []FreezerNode `json:"freezers"`
}

// FreezerNode is one freezer with its boxes.
type FreezerNode struct {
	Freezer Freezer      `json:"freezer"`
	Boxes   []StorageBox `json:"boxes"`
}

// AvailableSlot is a free position inside a box.
type AvailableSlot struct {
	BoxID    string `json:"box_id"`
	Position string `json:"position"`
}
