package api

import (
	"fmt"
	"net/url"
)

// Endpoints maps logical operations to URL paths. Pure string building, no
// network or state. Adding a nested resource means adding one more builder
// here; nothing else changes.
type Endpoints struct{}

func esc(s string) string { return url.PathEscape(s) }

func (Endpoints) Samples() string         { return "/samples" }
func (Endpoints) Sample(id string) string { return fmt.Sprintf("/samples/%s", esc(id)) }
func (Endpoints) SampleExportCSV() string { return "/samples/export_csv" }

func (Endpoints) Aliquots(sampleID string) string {
	return fmt.Sprintf("/samples/%s/aliquots", esc(sampleID))
}

func (Endpoints) Aliquot(sampleID, aliquotID string) string {
	return fmt.Sprintf("/samples/%s/aliquots/%s", esc(sampleID), esc(aliquotID))
}

func (Endpoints) AliquotLocation(sampleID, aliquotID string) string {
	return fmt.Sprintf("/samples/%s/aliquots/%s/location", esc(sampleID), esc(aliquotID))
}

func (Endpoints) Tests(sampleID, aliquotID string) string {
	return fmt.Sprintf("/samples/%s/aliquots/%s/tests", esc(sampleID), esc(aliquotID))
}

func (Endpoints) Test(sampleID, aliquotID, testID string) string {
	return fmt.Sprintf("/samples/%s/aliquots/%s/tests/%s", esc(sampleID), esc(aliquotID), esc(testID))
}

func (Endpoints) SampleTimeline(sampleID string) string {
	return fmt.Sprintf("/samples/%s/timeline", esc(sampleID))
}

func (Endpoints) AliquotTimeline(sampleID, aliquotID string) string {
	return fmt.Sprintf("/samples/%s/timeline/aliquots/%s", esc(sampleID), esc(aliquotID))
}

func (Endpoints) TestTimeline(sampleID, testID string) string {
	return fmt.Sprintf("/samples/%s/timeline/tests/%s", esc(sampleID), esc(testID))
}

func (Endpoints) Products() string         { return "/products" }
func (Endpoints) Product(id int) string    { return fmt.Sprintf("/products/%d", id) }
func (Endpoints) ProductSummaries() string { return "/products/summaries" }
func (Endpoints) ProductSamples(id int) string {
	return fmt.Sprintf("/products/%d/samples", id)
}
func (Endpoints) ProductTests(id int) string { return fmt.Sprintf("/products/%d/tests", id) }

func (Endpoints) StorageBoxes() string          { return "/storage/boxes" }
func (Endpoints) StorageFreezers() string       { return "/storage/freezers" }
func (Endpoints) StorageHierarchy() string      { return "/storage/hierarchy" }
func (Endpoints) StorageAvailableSlots() string { return "/storage/available_slots" }

// Metadata returns the path for a reference-data category, e.g.
// sample_types, users, health, all.
func (Endpoints) Metadata(category string) string {
	return fmt.Sprintf("/metadata/%s", esc(category))
}

func (Endpoints) MetadataEquipment(id int) string {
	return fmt.Sprintf("/metadata/equipment/%d", id)
}

func (Endpoints) MetadataStorageLocation(id int) string {
	return fmt.Sprintf("/metadata/storage_locations/%d", id)
}

func (Endpoints) Materials() string      { return "/inventory/materials" }
func (Endpoints) Material(id int) string { return fmt.Sprintf("/inventory/materials/%d", id) }
func (Endpoints) MaterialLots() string   { return "/inventory/material-lots" }
func (Endpoints) MaterialLot(id int) string {
	return fmt.Sprintf("/inventory/material-lots/%d", id)
}
func (Endpoints) UsageLogs() string      { return "/inventory/usage-logs" }
func (Endpoints) UsageLog(id int) string { return fmt.Sprintf("/inventory/usage-logs/%d", id) }
func (Endpoints) Adjustments() string    { return "/inventory/inventory-adjustments" }
func (Endpoints) Adjustment(id int) string {
	return fmt.Sprintf("/inventory/inventory-adjustments/%d", id)
}
