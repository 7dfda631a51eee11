package model

import "time"

// Material is an inventory substance tracked for quantity and expiry.
type Material struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	MaterialType  string     `json:"material_type,omitempty"`
	CASNumber     string     `json:"cas_number,omitempty"`
	Manufacturer  string     `json:"manufacturer,omitempty"`
	Grade         string     `json:"grade,omitempty"`
	UnitOfMeasure string     `json:"unit_of_measure,omitempty"`
	ShelfLifeDays int        `json:"shelf_life_days,omitempty"`
	IsControlled  bool       `json:"is_controlled"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// MaterialLot is a specific received batch of a material. The backend owns
// the quantity invariant (current = received - cumulative deltas); the
// client re-fetches the lot after any mutating call and never recomputes
// the quantity locally.
type MaterialLot struct {
	ID                int        `json:"id"`
	MaterialID        int        `json:"material_id"`
	LotNumber         string     `json:"lot_number"`
	ReceivedDate      *time.Time `json:"received_date,omitempty"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	ReceivedQuantity  float64    `json:"received_quantity"`
	CurrentQuantity   float64    `json:"current_quantity"`
	StorageLocationID int        `json:"storage_location_id,omitempty"`
	Status            string     `json:"status"`
	Remarks           string     `json:"remarks,omitempty"`
}

// MaterialUsageLog records a consumption against one lot.
type MaterialUsageLog struct {
	ID                 int       `json:"id"`
	MaterialLotID      int       `json:"material_lot_id"`
	UsedBy             string    `json:"used_by,omitempty"`
	UsedOn             time.Time `json:"used_on"`
	UsedQuantity       float64   `json:"used_quantity"`
	Purpose            string    `json:"purpose,omitempty"`
	AssociatedSampleID string    `json:"associated_sample_id,omitempty"`
	Remarks            string    `json:"remarks,omitempty"`
}

// MaterialInventoryAdjustment records a signed quantity correction against
// one lot.
type MaterialInventoryAdjustment struct {
	ID             int       `json:"id"`
	MaterialLotID  int       `json:"material_lot_id"`
	AdjustedBy     string    `json:"adjusted_by,omitempty"`
	AdjustedOn     time.Time `json:"adjusted_on"`
	AdjustmentType string    `json:"adjustment_type"`
	Quantity       float64   `json:"quantity"`
	Reason         string    `json:"reason,omitempty"`
	Remarks        string    `json:"remarks,omitempty"`
}

// MaterialCreate is the request shape for registering a material.
type MaterialCreate struct {
	Name          string `json:"name"`
	MaterialType  string `json:"material_type,omitempty"`
	CASNumber     string `json:"cas_number,omitempty"`
	Manufacturer  string `json:"manufacturer,omitempty"`
	Grade         string `json:"grade,omitempty"`
	UnitOfMeasure string `json:"unit_of_measure,omitempty"`
	ShelfLifeDays int    `json:"shelf_life_days,omitempty"`
	IsControlled  bool   `json:"is_controlled"`
}

// MaterialUpdate is a partial-field patch for a material.
type MaterialUpdate struct {
	Name          *string `json:"name,omitempty"`
	Manufacturer  *string `json:"manufacturer,omitempty"`
	Grade         *string `json:"grade,omitempty"`
	UnitOfMeasure *string `json:"unit_of_measure,omitempty"`
	ShelfLifeDays *int    `json:"shelf_life_days,omitempty"`
	IsControlled  *bool   `json:"is_controlled,omitempty"`
}

// MaterialLotCreate is the request shape for receiving a lot.
type MaterialLotCreate struct {
	MaterialID        int        `json:"material_id"`
	LotNumber         string     `json:"lot_number"`
	ReceivedDate      *time.Time `json:"received_date,omitempty"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	ReceivedQuantity  float64    `json:"received_quantity"`
	StorageLocationID int        `json:"storage_location_id,omitempty"`
	Remarks           string     `json:"remarks,omitempty"`
}

// MaterialLotUpdate is a partial-field patch for a lot.
type MaterialLotUpdate struct {
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	StorageLocationID *int       `json:"storage_location_id,omitempty"`
	Status            *string    `json:"status,omitempty"`
	Remarks           *string    `json:"remarks,omitempty"`
}

// UsageLogCreate records usage against a lot.
type UsageLogCreate struct {
	MaterialLotID      int     `json:"material_lot_id"`
	UsedBy             string  `json:"used_by,omitempty"`
	UsedQuantity       float64 `json:"used_quantity"`
	Purpose            string  `json:"purpose,omitempty"`
	AssociatedSampleID string  `json:"associated_sample_id,omitempty"`
	Remarks            string  `json:"remarks,omitempty"`
}

// AdjustmentCreate records a quantity correction against a lot.
type AdjustmentCreate struct {
	MaterialLotID  int     `json:"material_lot_id"`
	AdjustedBy     string  `json:"adjusted_by,omitempty"`
	AdjustmentType string  `json:"adjustment_type"`
	Quantity       float64 `json:"quantity"`
	Reason         string  `json:"reason,omitempty"`
	Remarks        string  `json:"remarks,omitempty"`
}

// InventoryFilter is the structured filter for inventory list queries.
// Inventory endpoints use skip/limit paging, the older backend generation.
type InventoryFilter struct {
	MaterialTypes []string
	Statuses      []string
	Search        string
}
