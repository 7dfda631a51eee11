package model

import "time"

// LookupValue is the common shape of the small reference tables served by
// the metadata endpoints (sample types, statuses, lab locations, equipment
// types and statuses). Loaded once per session and cached for dropdowns.
type LookupValue struct {
	ID          int    `json:"id"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type (
	SampleType      = LookupValue
	SampleStatus    = LookupValue
	LabLocation     = LookupValue
	EquipmentType   = LookupValue
	EquipmentStatus = LookupValue
)

// User is a lab staff account, referenced by created_by/assigned_to fields.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// StorageLocation is a named storage place. Unlike the other reference
// tables it supports full CRUD.
type StorageLocation struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	FreezerID   int    `json:"freezer_id,omitempty"`
}

// StorageLocationCreate is the request shape for adding a storage location.
type StorageLocationCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	FreezerID   int    `json:"freezer_id,omitempty"`
}

// StorageLocationUpdate is a partial-field patch for a storage location.
type StorageLocationUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Equipment is a lab instrument. Supports full CRUD.
type Equipment struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	TypeID        int        `json:"equipment_type_id"`
	StatusID      int        `json:"equipment_status_id"`
	SerialNumber  string     `json:"serial_number,omitempty"`
	Location      string     `json:"location,omitempty"`
	LastServiced  *time.Time `json:"last_serviced,omitempty"`
	NextServiceAt *time.Time `json:"next_service_at,omitempty"`
}

// EquipmentCreate is the request shape for registering equipment.
type EquipmentCreate struct {
	Name         string `json:"name"`
	TypeID       int    `json:"equipment_type_id"`
	StatusID     int    `json:"equipment_status_id"`
	SerialNumber string `json:"serial_number,omitempty"`
	Location     string `json:"location,omitempty"`
}

// EquipmentUpdate is a partial-field patch for equipment.
type EquipmentUpdate struct {
	Name         *string    `json:"name,omitempty"`
	StatusID     *int       `json:"equipment_status_id,omitempty"`
	Location     *string    `json:"location,omitempty"`
	LastServiced *time.Time `json:"last_serviced,omitempty"`
}

// Health is the backend health report served under the metadata router.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// MetadataBundle is the aggregate served by /metadata/all.
type MetadataBundle struct {
	SampleTypes       []SampleType      `json:"sample_types"`
	SampleStatuses    []SampleStatus    `json:"sample_statuses"`
	LabLocations      []LabLocation     `json:"lab_locations"`
	Users             []User            `json:"users"`
	StorageLocations  []StorageLocation `json:"storage_locations"`
	EquipmentTypes    []EquipmentType   `json:"equipment_types"`
	EquipmentStatuses []EquipmentStatus `json:"equipment_statuses"`
	Equipment         []Equipment       `json:"equipment"`
}
