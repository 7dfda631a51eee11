package model

import "time"

// TimelineEvent is an immutable audit record tied to a sample, aliquot, or
// test. Events are only ever read client-side.
type TimelineEvent struct {
	ID          string    `json:"id"`
	SampleID    string    `json:"sample_id"`
	AliquotID   string    `json:"aliquot_id,omitempty"`
	TestID      string    `json:"test_id,omitempty"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description,omitempty"`
	PerformedBy string    `json:"performed_by,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
