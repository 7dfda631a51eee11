package service

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/THANGADHIWAN/focal/internal/model"
)

func TestMetadataCategories(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("GET", testBaseURL+"/metadata/sample_types",
		envelopeResponder(t, 200, []model.SampleType{{ID: 1, Value: "Blood"}, {ID: 2, Value: "Plasma"}}))
	httpmock.RegisterResponder("GET", testBaseURL+"/metadata/users",
		envelopeResponder(t, 200, []model.User{{ID: "u-1", Name: "Dana", Email: "dana@lab.test"}}))
	httpmock.RegisterResponder("GET", testBaseURL+"/metadata/equipment_statuses",
		envelopeResponder(t, 200, nil))

	types, err := svcs.Metadata.SampleTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Blood", types[0].Value)

	users, err := svcs.Metadata.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "dana@lab.test", users[0].Email)

	statuses, err := svcs.Metadata.EquipmentStatuses(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, statuses)
	assert.Empty(t, statuses)
}

func TestMetadataAll(t *testing.T) {
	svcs := newTestServices(t)

	bundle := model.MetadataBundle{
		SampleTypes:    []model.SampleType{{ID: 1, Value: "Blood"}},
		SampleStatuses: []model.SampleStatus{{ID: 1, Value: "Received"}},
		Users:          []model.User{{ID: "u-1", Name: "Dana"}},
	}
	httpmock.RegisterResponder("GET", testBaseURL+"/metadata/all",
		envelopeResponder(t, 200, bundle))

	got, err := svcs.Metadata.All(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.SampleTypes, 1)
	assert.Len(t, got.Users, 1)
}

func TestMetadataHealth(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("GET", testBaseURL+"/metadata/health",
		envelopeResponder(t, 200, model.Health{Status: "ok", Version: "1.4.2"}))

	health, err := svcs.Metadata.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "1.4.2", health.Version)
}

func TestEquipmentCRUD(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("POST", testBaseURL+"/metadata/equipment",
		envelopeResponder(t, 201, model.Equipment{ID: 4, Name: "HPLC-02", TypeID: 1, StatusID: 1}))
	httpmock.RegisterResponder("PATCH", testBaseURL+"/metadata/equipment/4",
		envelopeResponder(t, 200, model.Equipment{ID: 4, Name: "HPLC-02", TypeID: 1, StatusID: 2}))
	httpmock.RegisterResponder("DELETE", testBaseURL+"/metadata/equipment/4",
		envelopeResponder(t, 200, nil))

	created, err := svcs.Equipment.Create(context.Background(), model.EquipmentCreate{
		Name: "HPLC-02", TypeID: 1, StatusID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, created.ID)

	statusID := 2
	updated, err := svcs.Equipment.Update(context.Background(), 4, model.EquipmentUpdate{StatusID: &statusID})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.StatusID)

	require.NoError(t, svcs.Equipment.Delete(context.Background(), 4))
}

func TestStorageHierarchyAndSlots(t *testing.T) {
	svcs := newTestServices(t)

	tree := model.StorageHierarchy{
		Freezers: []model.FreezerNode{{
			Freezer: model.Freezer{ID: "f-1", Name: "Freezer A", Temperature: -80},
			Boxes:   []model.StorageBox{{ID: "b-1", Label: "Box 1", Rows: 9, Columns: 9}},
		}},
	}
	httpmock.RegisterResponder("GET", testBaseURL+"/storage/hierarchy",
		envelopeResponder(t, 200, tree))
	httpmock.RegisterResponder("GET", testBaseURL+"/storage/available_slots",
		envelopeResponder(t, 200, []model.AvailableSlot{{BoxID: "b-1", Position: "A1"}}))

	got, err := svcs.Storage.Hierarchy(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Freezers, 1)
	assert.Len(t, got.Freezers[0].Boxes, 1)

	slots, err := svcs.Storage.AvailableSlots(context.Background(), "b-1")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "A1", slots[0].Position)
}

func TestStorageLocationLifecycle(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("POST", testBaseURL+"/metadata/storage_locations",
		envelopeResponder(t, 201, model.StorageLocation{ID: 9, Name: "Shelf 3"}))
	httpmock.RegisterResponder("PATCH", testBaseURL+"/metadata/storage_locations/9",
		envelopeResponder(t, 200, model.StorageLocation{ID: 9, Name: "Shelf 3B"}))
	httpmock.RegisterResponder("DELETE", testBaseURL+"/metadata/storage_locations/9",
		envelopeResponder(t, 200, nil))

	created, err := svcs.Storage.CreateLocation(context.Background(), model.StorageLocationCreate{Name: "Shelf 3"})
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)

	name := "Shelf 3B"
	updated, err := svcs.Storage.UpdateLocation(context.Background(), 9, model.StorageLocationUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Shelf 3B", updated.Name)

	require.NoError(t, svcs.Storage.DeleteLocation(context.Background(), 9))
}
