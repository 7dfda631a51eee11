// Package model defines the entity types exchanged with the LIMS backend.
// The backend owns every entity; the client holds copies only inside the
// state stores.
package model

import "time"

// Sample is the top-level physical specimen tracked through the lab
// workflow. It owns its aliquots.
type Sample struct {
	ID        string     `json:"id"`
	Code      string     `json:"sample_code"`
	Name      string     `json:"name"`
	TypeID    int        `json:"sample_type_id"`
	TypeName  string     `json:"type"`
	Status    string     `json:"status"`
	VolumeML  float64    `json:"volume_ml"`
	CreatedBy string     `json:"created_by"`
	BoxID     string     `json:"box_id,omitempty"`
	Location  string     `json:"location,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	Aliquots  []Aliquot  `json:"aliquots"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Aliquot is a sub-portion of a sample with its own volume and location.
// It owns its tests.
type Aliquot struct {
	ID        string     `json:"id"`
	Code      string     `json:"aliquot_code"`
	SampleID  string     `json:"sample_id"`
	VolumeML  float64    `json:"volume_ml"`
	Status    string     `json:"status"`
	Location  string     `json:"location,omitempty"`
	Purpose   string     `json:"purpose,omitempty"`
	CreatedBy string     `json:"created_by"`
	Tests     []Test     `json:"tests"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Test statuses use a fixed vocabulary; the server is the authority on
// valid transitions, the client accepts any value.
const (
	TestStatusPending    = "Pending"
	TestStatusInProgress = "In_Progress"
	TestStatusCompleted  = "Completed"
	TestStatusFailed     = "Failed"
	TestStatusCancelled  = "Cancelled"
)

// Test is a scheduled analytical procedure performed on an aliquot.
// SampleID is denormalized from the owning aliquot.
type Test struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Method        string       `json:"method,omitempty"`
	SampleID      string       `json:"sample_id"`
	AliquotID     string       `json:"aliquot_id"`
	Status        string       `json:"status"`
	AssignedTo    string       `json:"assigned_to,omitempty"`
	ScheduledDate *time.Time   `json:"scheduled_date,omitempty"`
	StartDate     *time.Time   `json:"start_date,omitempty"`
	EndDate       *time.Time   `json:"end_date,omitempty"`
	Results       []TestResult `json:"results,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// TestResult is an append-only record for one tested parameter.
type TestResult struct {
	ID         string    `json:"id"`
	TestID     string    `json:"test_id"`
	Parameter  string    `json:"parameter"`
	Value      string    `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	RecordedBy string    `json:"recorded_by,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// SampleCreate is the request shape for registering a sample. The server
// assigns id, code, and timestamps.
type SampleCreate struct {
	Name      string  `json:"name"`
	TypeID    int     `json:"sample_type_id"`
	Status    string  `json:"status,omitempty"`
	VolumeML  float64 `json:"volume_ml"`
	CreatedBy string  `json:"created_by"`
	BoxID     string  `json:"box_id,omitempty"`
	Location  string  `json:"location,omitempty"`
	Notes     string  `json:"notes,omitempty"`
}

// SampleUpdate is a partial-field patch; nil fields are left unchanged.
type SampleUpdate struct {
	Name     *string  `json:"name,omitempty"`
	Status   *string  `json:"status,omitempty"`
	VolumeML *float64 `json:"volume_ml,omitempty"`
	BoxID    *string  `json:"box_id,omitempty"`
	Location *string  `json:"location,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}

// AliquotCreate is the request shape for splitting an aliquot off a sample.
type AliquotCreate struct {
	VolumeML  float64 `json:"volume_ml"`
	Status    string  `json:"status,omitempty"`
	Location  string  `json:"location,omitempty"`
	Purpose   string  `json:"purpose,omitempty"`
	CreatedBy string  `json:"created_by"`
}

// AliquotUpdate is a partial-field patch for an aliquot.
type AliquotUpdate struct {
	VolumeML *float64 `json:"volume_ml,omitempty"`
	Status   *string  `json:"status,omitempty"`
	Purpose  *string  `json:"purpose,omitempty"`
}

// TestCreate is the request shape for scheduling a test on an aliquot.
type TestCreate struct {
	Name          string     `json:"name"`
	Method        string     `json:"method,omitempty"`
	AssignedTo    string     `json:"assigned_to,omitempty"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// TestUpdate is a partial-field patch for a test.
type TestUpdate struct {
	Status    *string    `json:"status,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// SampleFilter is the structured filter for sample list queries.
// Multi-select fields serialize as repeated query keys.
type SampleFilter struct {
	Types       []string   // sample type names
	Statuses    []string   // lifecycle statuses
	Locations   []string   // lab locations
	Owners      []string   // created_by values
	Search      string     // free-text search
	CreatedFrom *time.Time // created_at lower bound
	CreatedTo   *time.Time // created_at upper bound
}

// VolumeLeft returns the sample volume not yet consumed by aliquots. It is
// recomputed from whatever aliquot list is present, never cached.
func (s *Sample) VolumeLeft() float64 {
	left := s.VolumeML
	for i := range s.Aliquots {
		left -= s.Aliquots[i].VolumeML
	}
	return left
}
