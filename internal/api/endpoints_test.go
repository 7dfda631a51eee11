package api

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEndpoints_PathShapes(t *testing.T) {
	t.Parallel()

	var e Endpoints

	assert.Equal(t, "/samples", e.Samples())
	assert.Equal(t, "/samples/5", e.Sample("5"))
	assert.Equal(t, "/samples/export_csv", e.SampleExportCSV())
	assert.Equal(t, "/samples/5/aliquots", e.Aliquots("5"))
	assert.Equal(t, "/samples/5/aliquots/12", e.Aliquot("5", "12"))
	assert.Equal(t, "/samples/5/aliquots/12/location", e.AliquotLocation("5", "12"))
	assert.Equal(t, "/samples/5/aliquots/12/tests", e.Tests("5", "12"))
	assert.Equal(t, "/samples/5/aliquots/12/tests/7", e.Test("5", "12", "7"))
	assert.Equal(t, "/samples/5/timeline", e.SampleTimeline("5"))
	assert.Equal(t, "/samples/5/timeline/aliquots/12", e.AliquotTimeline("5", "12"))
	assert.Equal(t, "/samples/5/timeline/tests/7", e.TestTimeline("5", "7"))
	assert.Equal(t, "/products", e.Products())
	assert.Equal(t, "/products/3", e.Product(3))
	assert.Equal(t, "/products/summaries", e.ProductSummaries())
	assert.Equal(t, "/products/3/samples", e.ProductSamples(3))
	assert.Equal(t, "/products/3/tests", e.ProductTests(3))
	assert.Equal(t, "/storage/boxes", e.StorageBoxes())
	assert.Equal(t, "/storage/freezers", e.StorageFreezers())
	assert.Equal(t, "/storage/hierarchy", e.StorageHierarchy())
	assert.Equal(t, "/storage/available_slots", e.StorageAvailableSlots())
	assert.Equal(t, "/metadata/sample_types", e.Metadata("sample_types"))
	assert.Equal(t, "/metadata/equipment/4", e.MetadataEquipment(4))
	assert.Equal(t, "/metadata/storage_locations/2", e.MetadataStorageLocation(2))
	assert.Equal(t, "/inventory/materials", e.Materials())
	assert.Equal(t, "/inventory/materials/3", e.Material(3))
	assert.Equal(t, "/inventory/material-lots/3", e.MaterialLot(3))
	assert.Equal(t, "/inventory/usage-logs", e.UsageLogs())
	assert.Equal(t, "/inventory/inventory-adjustments", e.Adjustments())
}

func TestEndpoints_EscapesPathParameters(t *testing.T) {
	t.Parallel()

	var e Endpoints
	assert.Equal(t, "/samples/a%2Fb", e.Sample("a/b"))
}

func TestAddMulti_RepeatsKey(t *testing.T) {
	t.Parallel()

	v := url.Values{}
	AddMulti(v, "status", []string{"A", "B"})

	assert.Equal(t, []string{"A", "B"}, v["status"])
	assert.Equal(t, "status=A&status=B", v.Encode())
}

func TestPageParams_Values(t *testing.T) {
	t.Parallel()

	v := PageParams{Page: 2, Limit: 10}.Values()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "10", v.Get("limit"))

	// page defaults to 1
	v = PageParams{Limit: 10}.Values()
	assert.Equal(t, "1", v.Get("page"))
}

func TestSkipParams_Values(t *testing.T) {
	t.Parallel()

	v := SkipParams{Skip: 20, Limit: 10}.Values()
	assert.Equal(t, "20", v.Get("skip"))
	assert.Equal(t, "10", v.Get("limit"))
}

func TestAddDateRange(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	v := url.Values{}
	AddDateRange(v, &from, &to)

	assert.Equal(t, "2025-03-01", v.Get("created_from"))
	assert.Equal(t, "2025-03-31", v.Get("created_to"))
}
