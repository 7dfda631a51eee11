package mockapi

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
	"github.com/THANGADHIWAN/focal/internal/service"
)

// newBackend boots a seeded mock server and the full client stack over it.
// These tests exercise the real wire path end to end, no interception.
func newBackend(t *testing.T) *service.Services {
	t.Helper()

	srv, err := New(Options{Seed: true})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := api.New(api.Config{BaseURL: ts.URL + "/api/v1"})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return service.New(client)
}

func TestMockBackendHealth(t *testing.T) {
	svcs := newBackend(t)

	health, err := svcs.Metadata.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.True(t, svcs.Samples.TestConnection(context.Background()))
}

func TestMockBackendSampleLifecycle(t *testing.T) {
	svcs := newBackend(t)
	ctx := context.Background()

	sample, err := svcs.Samples.Create(ctx, model.SampleCreate{
		Name:      "stability pull 3",
		TypeID:    1,
		VolumeML:  120,
		CreatedBy: "u-1",
		Location:  "Lab 1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, sample.ID)
	assert.True(t, strings.HasPrefix(sample.Code, "SMP-"))
	assert.Equal(t, "Received", sample.Status)

	aliquot, err := svcs.Aliquots.Create(ctx, sample.ID, model.AliquotCreate{
		VolumeML:  30,
		CreatedBy: "u-1",
		Purpose:   "assay",
	})
	require.NoError(t, err)
	assert.Equal(t, sample.ID, aliquot.SampleID)

	// Splitting more than what is left is rejected.
	_, err = svcs.Aliquots.Create(ctx, sample.ID, model.AliquotCreate{VolumeML: 200, CreatedBy: "u-1"})
	require.Error(t, err)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)

	test, err := svcs.Tests.Create(ctx, sample.ID, aliquot.ID, model.TestCreate{Name: "assay", Method: "HPLC"})
	require.NoError(t, err)
	assert.Equal(t, model.TestStatusPending, test.Status)

	fetched, err := svcs.Samples.Get(ctx, sample.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Aliquots, 1)
	require.Len(t, fetched.Aliquots[0].Tests, 1)
	assert.InDelta(t, 90.0, fetched.VolumeLeft(), 0.001)

	events, err := svcs.Timeline.SampleTimeline(ctx, sample.ID, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(events), 3)

	require.NoError(t, svcs.Samples.Delete(ctx, sample.ID))
	missing, err := svcs.Samples.Get(ctx, sample.ID)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
	assert.Nil(t, missing)
}

func TestMockBackendSampleFilters(t *testing.T) {
	svcs := newBackend(t)
	ctx := context.Background()

	all, err := svcs.Samples.List(ctx, api.PageParams{Page: 1, Limit: 50}, model.SampleFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, all.Data)

	filtered, err := svcs.Samples.List(ctx, api.PageParams{Page: 1, Limit: 50}, model.SampleFilter{
		Statuses: []string{"Received", "In_Testing"},
	})
	require.NoError(t, err)
	assert.Less(t, len(filtered.Data), len(all.Data)+1)
	for _, smp := range filtered.Data {
		assert.Contains(t, []string{"Received", "In_Testing"}, smp.Status)
	}

	csv, err := svcs.Samples.ExportCSV(ctx, model.SampleFilter{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csv), "id,sample_code"))
}

func TestMockBackendProductNotFound(t *testing.T) {
	svcs := newBackend(t)

	product, err := svcs.Products.GetByID(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestMockBackendProductLifecycle(t *testing.T) {
	svcs := newBackend(t)
	ctx := context.Background()

	created, err := svcs.Products.Create(ctx, model.ProductCreate{Name: "Process Validation C"})
	require.NoError(t, err)
	assert.Equal(t, model.ProductNotStarted, created.Status)

	status := model.ProductCompleted
	updated, err := svcs.Products.Update(ctx, created.ID, model.ProductUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.ProductCompleted, updated.Status)

	summaries, err := svcs.Products.Summaries(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(summaries), 3)

	require.NoError(t, svcs.Products.Delete(ctx, created.ID))
}

func TestMockBackendInventoryQuantities(t *testing.T) {
	svcs := newBackend(t)
	ctx := context.Background()

	lot, err := svcs.Inventory.Lot(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, lot)
	start := lot.CurrentQuantity

	_, err = svcs.Inventory.CreateUsageLog(ctx, model.UsageLogCreate{
		MaterialLotID: 1,
		UsedQuantity:  25,
		Purpose:       "mobile phase",
	})
	require.NoError(t, err)

	lot, err = svcs.Inventory.Lot(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, start-25, lot.CurrentQuantity, 0.001)

	// Consuming more than the lot holds is rejected and leaves the
	// quantity untouched.
	_, err = svcs.Inventory.CreateUsageLog(ctx, model.UsageLogCreate{
		MaterialLotID: 1,
		UsedQuantity:  10000,
	})
	require.Error(t, err)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)

	lot, err = svcs.Inventory.Lot(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, start-25, lot.CurrentQuantity, 0.001)

	_, err = svcs.Inventory.CreateAdjustment(ctx, model.AdjustmentCreate{
		MaterialLotID:  1,
		AdjustmentType: "recount",
		Quantity:       5,
	})
	require.NoError(t, err)

	lot, err = svcs.Inventory.Lot(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, start-20, lot.CurrentQuantity, 0.001)
}

func TestMockBackendMetadataAndStorage(t *testing.T) {
	svcs := newBackend(t)
	ctx := context.Background()

	bundle, err := svcs.Metadata.All(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, bundle.SampleTypes)
	assert.NotEmpty(t, bundle.Users)
	assert.NotEmpty(t, bundle.Equipment)

	tree, err := svcs.Storage.Hierarchy(ctx)
	require.NoError(t, err)
	require.Len(t, tree.Freezers, 2)

	boxID := tree.Freezers[0].Boxes[0].ID
	slots, err := svcs.Storage.AvailableSlots(ctx, boxID)
	require.NoError(t, err)
	assert.NotEmpty(t, slots)

	_, err = svcs.Metadata.SampleTypes(ctx)
	require.NoError(t, err)
}
