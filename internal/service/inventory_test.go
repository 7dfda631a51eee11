package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

func TestInventoryMaterials_SkipLimitPaging(t *testing.T) {
	svcs := newTestServices(t)

	expectedQuery := url.Values{
		"skip":          []string{"40"},
		"limit":         []string{"20"},
		"material_type": []string{"Reagent", "Solvent"},
	}
	materials := []model.Material{{ID: 1, Name: "Acetonitrile"}}
	httpmock.RegisterResponderWithQuery("GET", testBaseURL+"/inventory/materials", expectedQuery,
		envelopeResponder(t, 200, materials))

	got, err := svcs.Inventory.Materials(context.Background(),
		api.SkipParams{Skip: 40, Limit: 20},
		model.InventoryFilter{MaterialTypes: []string{"Reagent", "Solvent"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acetonitrile", got[0].Name)
}

func TestInventoryLots_ScopedToMaterial(t *testing.T) {
	svcs := newTestServices(t)

	expectedQuery := url.Values{
		"skip":        []string{"0"},
		"material_id": []string{"7"},
	}
	lots := []model.MaterialLot{{ID: 3, MaterialID: 7, LotNumber: "LOT-2026-001", CurrentQuantity: 450}}
	httpmock.RegisterResponderWithQuery("GET", testBaseURL+"/inventory/material-lots", expectedQuery,
		envelopeResponder(t, 200, lots))

	got, err := svcs.Inventory.Lots(context.Background(), api.SkipParams{}, 7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "LOT-2026-001", got[0].LotNumber)
}

func TestInventoryCreateUsageLog_PostsLotReference(t *testing.T) {
	svcs := newTestServices(t)

	var posted model.UsageLogCreate
	httpmock.RegisterResponder("POST", testBaseURL+"/inventory/usage-logs",
		func(req *http.Request) (*http.Response, error) {
			raw, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, &posted))
			return envelopeResponder(t, 201, model.MaterialUsageLog{
				ID: 12, MaterialLotID: posted.MaterialLotID, UsedQuantity: posted.UsedQuantity,
			})(req)
		})

	entry, err := svcs.Inventory.CreateUsageLog(context.Background(), model.UsageLogCreate{
		MaterialLotID: 3,
		UsedQuantity:  25,
		Purpose:       "HPLC mobile phase",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, posted.MaterialLotID)
	assert.Equal(t, 3, entry.MaterialLotID)
	assert.InDelta(t, 25.0, entry.UsedQuantity, 0.001)
}

func TestInventoryLot_RefetchReflectsServerQuantity(t *testing.T) {
	svcs := newTestServices(t)

	// The backend owns the quantity; a re-fetch after a usage log must be
	// taken verbatim even if it disagrees with local arithmetic.
	httpmock.RegisterResponder("GET", testBaseURL+"/inventory/material-lots/3",
		envelopeResponder(t, 200, model.MaterialLot{
			ID: 3, MaterialID: 7, ReceivedQuantity: 500, CurrentQuantity: 425,
		}))

	lot, err := svcs.Inventory.Lot(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, lot)
	assert.InDelta(t, 425.0, lot.CurrentQuantity, 0.001)
}

func TestInventoryCreateAdjustment(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("POST", testBaseURL+"/inventory/inventory-adjustments",
		envelopeResponder(t, 201, model.MaterialInventoryAdjustment{
			ID: 5, MaterialLotID: 3, AdjustmentType: "loss", Quantity: -10,
		}))

	adj, err := svcs.Inventory.CreateAdjustment(context.Background(), model.AdjustmentCreate{
		MaterialLotID:  3,
		AdjustmentType: "loss",
		Quantity:       -10,
		Reason:         "spillage",
	})
	require.NoError(t, err)
	assert.Equal(t, "loss", adj.AdjustmentType)
	assert.InDelta(t, -10.0, adj.Quantity, 0.001)
}

func TestInventoryDeleteLot(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("DELETE", testBaseURL+"/inventory/material-lots/3",
		envelopeResponder(t, 200, nil))

	require.NoError(t, svcs.Inventory.DeleteLot(context.Background(), 3))
}
