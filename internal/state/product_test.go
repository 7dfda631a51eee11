package state

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

func TestProductStoreRefreshAndMutations(t *testing.T) {
	svcs := newTestServices(t)
	store := NewProductStore(svcs, DefaultDebounce)
	defer store.Close()

	httpmock.RegisterResponder("GET", testBaseURL+"/products",
		envelopeResponder(t, 200, api.Page[model.Product]{
			Items: []model.Product{{ID: 1, Code: "PRD-001", Status: model.ProductNotStarted}},
			Total: 1, Page: 1, Size: 20, Pages: 1,
		}))
	require.NoError(t, store.Refresh(context.Background()))
	require.Len(t, store.Products(), 1)

	httpmock.RegisterResponder("POST", testBaseURL+"/products",
		envelopeResponder(t, 201, model.Product{ID: 2, Code: "PRD-002", Name: "Beta"}))
	created, err := store.Create(context.Background(), model.ProductCreate{Name: "Beta"})
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)
	assert.Len(t, store.Products(), 2)
	assert.Equal(t, 2, store.Total())

	httpmock.RegisterResponder("PUT", testBaseURL+"/products/1",
		envelopeResponder(t, 200, model.Product{ID: 1, Code: "PRD-001", Status: model.ProductInProgress}))
	status := model.ProductInProgress
	updated, err := store.Update(context.Background(), 1, model.ProductUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.ProductInProgress, updated.Status)
	assert.Equal(t, model.ProductInProgress, store.Get(1).Status)

	httpmock.RegisterResponder("DELETE", testBaseURL+"/products/1",
		envelopeResponder(t, 200, nil))
	require.NoError(t, store.Delete(context.Background(), 1))
	assert.Nil(t, store.Get(1))
	assert.Len(t, store.Products(), 1)
}

func TestProductStoreDetail_MissingProductIsNil(t *testing.T) {
	svcs := newTestServices(t)
	store := NewProductStore(svcs, DefaultDebounce)
	defer store.Close()

	httpmock.RegisterResponder("GET", testBaseURL+"/products/99",
		errorResponder(t, 404, "product not found"))

	product, err := store.Detail(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestProductStoreDetail_ServerErrorSurfaces(t *testing.T) {
	svcs := newTestServices(t)
	store := NewProductStore(svcs, DefaultDebounce)
	defer store.Close()

	httpmock.RegisterResponder("GET", testBaseURL+"/products/1",
		errorResponder(t, 500, "database unavailable"))

	product, err := store.Detail(context.Background(), 1)
	require.Error(t, err)
	assert.Nil(t, product)
	assert.Error(t, store.Err())
}
