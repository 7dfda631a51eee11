package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

func TestProductList_ItemPageShape(t *testing.T) {
	svcs := newTestServices(t)

	expectedQuery := url.Values{
		"page":   []string{"1"},
		"limit":  []string{"20"},
		"status": []string{"IN_PROGRESS", "COMPLETED"},
	}
	page := api.Page[model.Product]{
		Items: []model.Product{{ID: 1, Code: "PRD-001"}, {ID: 2, Code: "PRD-002"}},
		Total: 2,
		Page:  1,
		Size:  20,
		Pages: 1,
	}
	httpmock.RegisterResponderWithQuery("GET", testBaseURL+"/products", expectedQuery,
		envelopeResponder(t, 200, page))

	got, err := svcs.Products.List(context.Background(),
		api.PageParams{Page: 1, Limit: 20},
		model.ProductFilter{Statuses: []model.ProductStatus{model.ProductInProgress, model.ProductCompleted}})
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Total)
}

func TestProductGetByID_NotFoundIsNilNotError(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("GET", testBaseURL+"/products/99",
		errorResponder(t, 404, "product not found"))

	got, err := svcs.Products.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductGetByID_ServerErrorIsError(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("GET", testBaseURL+"/products/1",
		errorResponder(t, 500, "database unavailable"))

	got, err := svcs.Products.GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.Nil(t, got)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
}

func TestProductUpdate_UsesPut(t *testing.T) {
	svcs := newTestServices(t)

	updated := model.Product{ID: 1, Name: "Stability Study B", Status: model.ProductInProgress}
	httpmock.RegisterResponder("PUT", testBaseURL+"/products/1",
		envelopeResponder(t, 200, updated))

	name := "Stability Study B"
	got, err := svcs.Products.Update(context.Background(), 1, model.ProductUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Stability Study B", got.Name)

	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["PUT "+testBaseURL+"/products/1"])
}

func TestProductSummaries(t *testing.T) {
	svcs := newTestServices(t)

	summaries := []model.ProductSummary{
		{ID: 1, Code: "PRD-001", Name: "Alpha", Status: model.ProductNotStarted},
	}
	httpmock.RegisterResponder("GET", testBaseURL+"/products/summaries",
		envelopeResponder(t, 200, summaries))

	got, err := svcs.Products.Summaries(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "PRD-001", got[0].Code)
}

func TestProductAssociations(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("GET", testBaseURL+"/products/3/samples",
		envelopeResponder(t, 200, []model.Sample{{ID: "s-1"}}))
	httpmock.RegisterResponder("GET", testBaseURL+"/products/3/tests",
		envelopeResponder(t, 200, nil))

	samples, err := svcs.Products.SamplesForProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, samples, 1)

	tests, err := svcs.Products.TestsForProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, tests)
	assert.Empty(t, tests)
}
