package state

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/THANGADHIWAN/focal/internal/model"
)

func TestInventoryStoreRecordUsage_LotQuantityFromServer(t *testing.T) {
	svcs := newTestServices(t)
	store := NewInventoryStore(svcs)

	httpmock.RegisterResponder("GET", testBaseURL+"/inventory/material-lots",
		envelopeResponder(t, 200, []model.MaterialLot{
			{ID: 3, MaterialID: 7, ReceivedQuantity: 500, CurrentQuantity: 500},
		}))
	require.NoError(t, store.RefreshLots(context.Background(), 7))
	require.NotNil(t, store.Lot(3))

	httpmock.RegisterResponder("POST", testBaseURL+"/inventory/usage-logs",
		envelopeResponder(t, 201, model.MaterialUsageLog{ID: 12, MaterialLotID: 3, UsedQuantity: 25}))
	// The server applied a correction besides the 25 used, so the re-fetched
	// quantity differs from local arithmetic. The server wins.
	httpmock.RegisterResponder("GET", testBaseURL+"/inventory/material-lots/3",
		envelopeResponder(t, 200, model.MaterialLot{
			ID: 3, MaterialID: 7, ReceivedQuantity: 500, CurrentQuantity: 470,
		}))

	entry, err := store.RecordUsage(context.Background(), model.UsageLogCreate{
		MaterialLotID: 3, UsedQuantity: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, entry.ID)
	assert.InDelta(t, 470.0, store.Lot(3).CurrentQuantity, 0.001)
}

func TestInventoryStoreRecordAdjustment_RefetchesLot(t *testing.T) {
	svcs := newTestServices(t)
	store := NewInventoryStore(svcs)

	httpmock.RegisterResponder("GET", testBaseURL+"/inventory/material-lots",
		envelopeResponder(t, 200, []model.MaterialLot{{ID: 3, CurrentQuantity: 100}}))
	require.NoError(t, store.RefreshLots(context.Background(), 0))

	httpmock.RegisterResponder("POST", testBaseURL+"/inventory/inventory-adjustments",
		envelopeResponder(t, 201, model.MaterialInventoryAdjustment{
			ID: 5, MaterialLotID: 3, AdjustmentType: "loss", Quantity: -10,
		}))
	httpmock.RegisterResponder("GET", testBaseURL+"/inventory/material-lots/3",
		envelopeResponder(t, 200, model.MaterialLot{ID: 3, CurrentQuantity: 90}))

	_, err := store.RecordAdjustment(context.Background(), model.AdjustmentCreate{
		MaterialLotID: 3, AdjustmentType: "loss", Quantity: -10,
	})
	require.NoError(t, err)
	assert.InDelta(t, 90.0, store.Lot(3).CurrentQuantity, 0.001)
}

func TestInventoryStoreRefreshMaterials(t *testing.T) {
	svcs := newTestServices(t)
	store := NewInventoryStore(svcs)

	httpmock.RegisterResponder("GET", testBaseURL+"/inventory/materials",
		envelopeResponder(t, 200, []model.Material{{ID: 1, Name: "Acetonitrile"}}))

	store.SetFilter(model.InventoryFilter{MaterialTypes: []string{"Solvent"}})
	require.NoError(t, store.RefreshMaterials(context.Background()))
	require.Len(t, store.Materials(), 1)
	assert.Equal(t, "Acetonitrile", store.Materials()[0].Name)
}

func TestInventoryStoreCreateMaterialAndLot(t *testing.T) {
	svcs := newTestServices(t)
	store := NewInventoryStore(svcs)

	httpmock.RegisterResponder("POST", testBaseURL+"/inventory/materials",
		envelopeResponder(t, 201, model.Material{ID: 9, Name: "Methanol"}))
	httpmock.RegisterResponder("POST", testBaseURL+"/inventory/material-lots",
		envelopeResponder(t, 201, model.MaterialLot{ID: 4, MaterialID: 9, ReceivedQuantity: 1000, CurrentQuantity: 1000}))

	material, err := store.CreateMaterial(context.Background(), model.MaterialCreate{Name: "Methanol"})
	require.NoError(t, err)
	assert.Equal(t, 9, material.ID)
	assert.Len(t, store.Materials(), 1)

	lot, err := store.CreateLot(context.Background(), model.MaterialLotCreate{
		MaterialID: 9, LotNumber: "LOT-1", ReceivedQuantity: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, lot.ID)
	assert.NotNil(t, store.Lot(4))
}
