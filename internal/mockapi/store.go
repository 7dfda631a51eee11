package mockapi

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/THANGADHIWAN/focal/internal/errors"
)

// Row types are deliberately flat; handlers assemble the nested response
// shapes at read time.

type sampleRow struct {
	ID        string `gorm:"primaryKey"`
	Code      string `gorm:"uniqueIndex"`
	Name      string
	TypeID    int
	TypeName  string
	Status    string
	VolumeML  float64
	CreatedBy string
	BoxID     string
	Location  string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type aliquotRow struct {
	ID        string `gorm:"primaryKey"`
	Code      string
	SampleID  string `gorm:"index"`
	VolumeML  float64
	Status    string
	Location  string
	Purpose   string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type testRow struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	Method     string
	SampleID   string `gorm:"index"`
	AliquotID  string `gorm:"index"`
	Status     string
	AssignedTo string
	Notes      string
	CreatedAt  time.Time
}

type timelineRow struct {
	ID          string `gorm:"primaryKey"`
	SampleID    string `gorm:"index"`
	AliquotID   string
	TestID      string
	EventType   string
	Description string
	PerformedBy string
	OccurredAt  time.Time
}

type productRow struct {
	ID          int `gorm:"primaryKey;autoIncrement"`
	Code        string
	Name        string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// lookupRow backs the small reference tables, keyed by category.
type lookupRow struct {
	ID          int    `gorm:"primaryKey;autoIncrement"`
	Category    string `gorm:"index"`
	Value       string
	Description string
}

type userRow struct {
	ID    string `gorm:"primaryKey"`
	Name  string
	Email string
	Role  string
}

type storageLocationRow struct {
	ID          int `gorm:"primaryKey;autoIncrement"`
	Name        string
	Description string
	FreezerID   int
}

type equipmentRow struct {
	ID           int `gorm:"primaryKey;autoIncrement"`
	Name         string
	TypeID       int
	StatusID     int
	SerialNumber string
	Location     string
}

type freezerRow struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Location    string
	Temperature float64
}

type boxRow struct {
	ID        string `gorm:"primaryKey"`
	Label     string
	FreezerID string `gorm:"index"`
	Rows      int
	Columns   int
	CreatedAt time.Time
}

type materialRow struct {
	ID            int `gorm:"primaryKey;autoIncrement"`
	Name          string
	MaterialType  string
	CASNumber     string
	Manufacturer  string
	Grade         string
	UnitOfMeasure string
	ShelfLifeDays int
	IsControlled  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type lotRow struct {
	ID                int `gorm:"primaryKey;autoIncrement"`
	MaterialID        int `gorm:"index"`
	LotNumber         string
	ReceivedDate      *time.Time
	ExpiryDate        *time.Time
	ReceivedQuantity  float64
	CurrentQuantity   float64
	StorageLocationID int
	Status            string
	Remarks           string
}

type usageLogRow struct {
	ID                 int `gorm:"primaryKey;autoIncrement"`
	MaterialLotID      int `gorm:"index"`
	UsedBy             string
	UsedOn             time.Time
	UsedQuantity       float64
	Purpose            string
	AssociatedSampleID string
	Remarks            string
}

type adjustmentRow struct {
	ID             int `gorm:"primaryKey;autoIncrement"`
	MaterialLotID  int `gorm:"index"`
	AdjustedBy     string
	AdjustedOn     time.Time
	AdjustmentType string
	Quantity       float64
	Reason         string
	Remarks        string
}

var dbSerial atomic.Uint64

func openDB() (*gorm.DB, error) {
	// A named in-memory database keeps the instance private while still
	// being shareable across the connection pool.
	dsn := fmt.Sprintf("file:mockapi_%d?mode=memory&cache=shared", dbSerial.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		return nil, errors.New(err).
			Component("mockapi").
			Category(errors.CategoryDatastore).
			Build()
	}

	if err := db.AutoMigrate(
		&sampleRow{}, &aliquotRow{}, &testRow{}, &timelineRow{},
		&productRow{}, &lookupRow{}, &userRow{}, &storageLocationRow{},
		&equipmentRow{}, &freezerRow{}, &boxRow{},
		&materialRow{}, &lotRow{}, &usageLogRow{}, &adjustmentRow{},
	); err != nil {
		return nil, errors.New(err).
			Component("mockapi").
			Category(errors.CategoryDatastore).
			Context("operation", "migrate").
			Build()
	}
	return db, nil
}

// seed populates every table with a small coherent dataset so the client
// has something to browse against a fresh mock.
func seed(db *gorm.DB) error {
	now := time.Now().UTC()

	lookups := []lookupRow{
		{Category: "sample_types", Value: "Blood"},
		{Category: "sample_types", Value: "Plasma"},
		{Category: "sample_types", Value: "Tissue"},
		{Category: "sample_statuses", Value: "Received"},
		{Category: "sample_statuses", Value: "In_Storage"},
		{Category: "sample_statuses", Value: "In_Testing"},
		{Category: "sample_statuses", Value: "Disposed"},
		{Category: "lab_locations", Value: "Lab 1"},
		{Category: "lab_locations", Value: "Lab 2"},
		{Category: "equipment_types", Value: "HPLC"},
		{Category: "equipment_types", Value: "Centrifuge"},
		{Category: "equipment_statuses", Value: "Operational"},
		{Category: "equipment_statuses", Value: "Under Maintenance"},
	}
	if err := db.Create(&lookups).Error; err != nil {
		return err
	}

	users := []userRow{
		{ID: "u-1", Name: "Dana Reyes", Email: "dana@lab.test", Role: "analyst"},
		{ID: "u-2", Name: "Sam Okafor", Email: "sam@lab.test", Role: "manager"},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	freezers := []freezerRow{
		{ID: uuid.NewString(), Name: "Freezer A", Location: "Lab 1", Temperature: -80},
		{ID: uuid.NewString(), Name: "Freezer B", Location: "Lab 2", Temperature: -20},
	}
	if err := db.Create(&freezers).Error; err != nil {
		return err
	}

	boxes := []boxRow{
		{ID: uuid.NewString(), Label: "Box 1", FreezerID: freezers[0].ID, Rows: 9, Columns: 9, CreatedAt: now},
		{ID: uuid.NewString(), Label: "Box 2", FreezerID: freezers[1].ID, Rows: 8, Columns: 12, CreatedAt: now},
	}
	if err := db.Create(&boxes).Error; err != nil {
		return err
	}

	locations := []storageLocationRow{
		{Name: "Freezer A / Box 1", FreezerID: 1},
		{Name: "Freezer B / Box 2", FreezerID: 2},
	}
	if err := db.Create(&locations).Error; err != nil {
		return err
	}

	equipment := []equipmentRow{
		{Name: "HPLC-01", TypeID: 10, StatusID: 12, SerialNumber: "HP-4401", Location: "Lab 1"},
		{Name: "Centrifuge-01", TypeID: 11, StatusID: 12, SerialNumber: "CF-0092", Location: "Lab 2"},
	}
	if err := db.Create(&equipment).Error; err != nil {
		return err
	}

	samples := make([]sampleRow, 0, 6)
	for i := 1; i <= 6; i++ {
		samples = append(samples, sampleRow{
			ID:        uuid.NewString(),
			Code:      fmt.Sprintf("SMP-%03d", i),
			Name:      fmt.Sprintf("Specimen %d", i),
			TypeID:    1 + i%3,
			TypeName:  []string{"Blood", "Plasma", "Tissue"}[i%3],
			Status:    []string{"Received", "In_Storage", "In_Testing"}[i%3],
			VolumeML:  float64(50 + 10*i),
			CreatedBy: "u-1",
			Location:  "Lab 1",
			CreatedAt: now.Add(-time.Duration(i) * 24 * time.Hour),
			UpdatedAt: now,
		})
	}
	if err := db.Create(&samples).Error; err != nil {
		return err
	}

	aliquot := aliquotRow{
		ID:        uuid.NewString(),
		Code:      "ALQ-001",
		SampleID:  samples[0].ID,
		VolumeML:  10,
		Status:    "Available",
		Location:  "Freezer A / Box 1",
		CreatedBy: "u-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&aliquot).Error; err != nil {
		return err
	}

	test := testRow{
		ID:        uuid.NewString(),
		Name:      "pH determination",
		Method:    "USP <791>",
		SampleID:  samples[0].ID,
		AliquotID: aliquot.ID,
		Status:    "Pending",
		CreatedAt: now,
	}
	if err := db.Create(&test).Error; err != nil {
		return err
	}

	events := []timelineRow{
		{ID: uuid.NewString(), SampleID: samples[0].ID, EventType: "created",
			Description: "Sample registered", PerformedBy: "u-1", OccurredAt: now.Add(-24 * time.Hour)},
		{ID: uuid.NewString(), SampleID: samples[0].ID, AliquotID: aliquot.ID, EventType: "aliquot_created",
			Description: "Aliquot ALQ-001 split", PerformedBy: "u-1", OccurredAt: now},
	}
	if err := db.Create(&events).Error; err != nil {
		return err
	}

	products := []productRow{
		{Code: "PRD-001", Name: "Stability Study A", Status: "IN_PROGRESS", CreatedAt: now, UpdatedAt: now},
		{Code: "PRD-002", Name: "Release Batch 7", Status: "NOT_STARTED", CreatedAt: now, UpdatedAt: now},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	materials := []materialRow{
		{Name: "Acetonitrile", MaterialType: "Solvent", Grade: "HPLC", UnitOfMeasure: "mL", CreatedAt: now, UpdatedAt: now},
		{Name: "Methanol", MaterialType: "Solvent", Grade: "ACS", UnitOfMeasure: "mL", CreatedAt: now, UpdatedAt: now},
	}
	if err := db.Create(&materials).Error; err != nil {
		return err
	}

	received := now.Add(-30 * 24 * time.Hour)
	lots := []lotRow{
		{MaterialID: 1, LotNumber: "LOT-2026-001", ReceivedDate: &received,
			ReceivedQuantity: 500, CurrentQuantity: 500, StorageLocationID: 1, Status: "Available"},
	}
	return db.Create(&lots).Error
}
