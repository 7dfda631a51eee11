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

func TestSampleList_PagingAndFilters(t *testing.T) {
	svcs := newTestServices(t)

	expectedQuery := url.Values{
		"page":   []string{"2"},
		"limit":  []string{"25"},
		"status": []string{"Received", "In_Storage"},
		"type":   []string{"Blood"},
		"search": []string{"abc"},
	}
	page := api.LegacyPage[model.Sample]{
		Data:        []model.Sample{{ID: "s-1", Code: "SMP-001"}, {ID: "s-2", Code: "SMP-002"}},
		TotalCount:  42,
		TotalPages:  2,
		CurrentPage: 2,
		PageSize:    25,
		HasMore:     false,
	}
	httpmock.RegisterResponderWithQuery("GET", testBaseURL+"/samples", expectedQuery,
		envelopeResponder(t, 200, page))

	got, err := svcs.Samples.List(context.Background(),
		api.PageParams{Page: 2, Limit: 25},
		model.SampleFilter{
			Types:    []string{"Blood"},
			Statuses: []string{"Received", "In_Storage"},
			Search:   "abc",
		})
	require.NoError(t, err)
	assert.Len(t, got.Data, 2)
	assert.Equal(t, 42, got.TotalCount)
	assert.Equal(t, 2, got.CurrentPage)
}

func TestSampleList_NullDataYieldsEmptyPage(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		envelopeResponder(t, 200, nil))

	got, err := svcs.Samples.List(context.Background(), api.PageParams{Page: 1}, model.SampleFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got.Data)
	assert.Empty(t, got.Data)
}

func TestSampleList_ErrorReturnsEmptyPageAndError(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		errorResponder(t, 500, "database unavailable"))

	got, err := svcs.Samples.List(context.Background(), api.PageParams{Page: 1, Limit: 10}, model.SampleFilter{})
	require.Error(t, err)
	assert.Empty(t, got.Data)
	assert.Equal(t, 1, got.CurrentPage)
	assert.Equal(t, 10, got.PageSize)
}

func TestSampleGet_NoDataReturnsNil(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("GET", testBaseURL+"/samples/s-9",
		envelopeResponder(t, 200, nil))

	got, err := svcs.Samples.Get(context.Background(), "s-9")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSampleCreate_ReturnsServerEntity(t *testing.T) {
	svcs := newTestServices(t)

	created := model.Sample{ID: "s-10", Code: "SMP-010", Name: "plasma batch", VolumeML: 50}
	httpmock.RegisterResponder("POST", testBaseURL+"/samples",
		envelopeResponder(t, 201, created))

	got, err := svcs.Samples.Create(context.Background(), model.SampleCreate{
		Name:      "plasma batch",
		TypeID:    1,
		VolumeML:  50,
		CreatedBy: "u-1",
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "s-10", got.ID)
	assert.Equal(t, "SMP-010", got.Code)
}

func TestSampleUpdate_UsesPatch(t *testing.T) {
	svcs := newTestServices(t)

	updated := model.Sample{ID: "s-1", Status: "In_Testing"}
	httpmock.RegisterResponder("PATCH", testBaseURL+"/samples/s-1",
		envelopeResponder(t, 200, updated))

	status := "In_Testing"
	got, err := svcs.Samples.Update(context.Background(), "s-1", model.SampleUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "In_Testing", got.Status)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSampleDelete(t *testing.T) {
	svcs := newTestServices(t)

	httpmock.RegisterResponder("DELETE", testBaseURL+"/samples/s-1",
		envelopeResponder(t, 200, nil))

	require.NoError(t, svcs.Samples.Delete(context.Background(), "s-1"))
}

func TestSampleExportCSV_FilterWithoutPaging(t *testing.T) {
	svcs := newTestServices(t)

	csv := "id,sample_code,status\ns-1,SMP-001,Received\n"
	expectedQuery := url.Values{"status": []string{"Received"}}
	httpmock.RegisterResponderWithQuery("GET", testBaseURL+"/samples/export_csv", expectedQuery,
		httpmock.NewStringResponder(200, csv))

	payload, err := svcs.Samples.ExportCSV(context.Background(), model.SampleFilter{
		Statuses: []string{"Received"},
	})
	require.NoError(t, err)
	assert.Equal(t, csv, string(payload))
}

func TestSampleTestConnection(t *testing.T) {
	t.Run("healthy backend", func(t *testing.T) {
		svcs := newTestServices(t)
		httpmock.RegisterResponder("GET", testBaseURL+"/metadata/health",
			envelopeResponder(t, 200, model.Health{Status: "ok"}))
		assert.True(t, svcs.Samples.TestConnection(context.Background()))
	})

	t.Run("http error still counts as connected", func(t *testing.T) {
		svcs := newTestServices(t)
		httpmock.RegisterResponder("GET", testBaseURL+"/metadata/health",
			errorResponder(t, 503, "maintenance"))
		assert.True(t, svcs.Samples.TestConnection(context.Background()))
	})

	t.Run("unreachable backend", func(t *testing.T) {
		svcs := newTestServices(t)
		// No responder registered: httpmock fails the connection.
		assert.False(t, svcs.Samples.TestConnection(context.Background()))
	})
}

func TestAliquotUpdateLocation(t *testing.T) {
	svcs := newTestServices(t)

	moved := model.Aliquot{ID: "a-1", SampleID: "s-1", Location: "Freezer B / Box 3"}
	httpmock.RegisterResponder("PATCH", testBaseURL+"/samples/s-1/aliquots/a-1/location",
		envelopeResponder(t, 200, moved))

	got, err := svcs.Aliquots.UpdateLocation(context.Background(), "s-1", "a-1", "Freezer B / Box 3")
	require.NoError(t, err)
	assert.Equal(t, "Freezer B / Box 3", got.Location)
}

func TestTestCreate_NestedPath(t *testing.T) {
	svcs := newTestServices(t)

	created := model.Test{ID: "t-1", SampleID: "s-1", AliquotID: "a-1", Name: "pH", Status: model.TestStatusPending}
	httpmock.RegisterResponder("POST", testBaseURL+"/samples/s-1/aliquots/a-1/tests",
		envelopeResponder(t, 201, created))

	got, err := svcs.Tests.Create(context.Background(), "s-1", "a-1", model.TestCreate{Name: "pH"})
	require.NoError(t, err)
	assert.Equal(t, model.TestStatusPending, got.Status)
	assert.Equal(t, "a-1", got.AliquotID)
}

func TestTimelineSample_LimitParam(t *testing.T) {
	svcs := newTestServices(t)

	events := []model.TimelineEvent{{ID: "e-1", SampleID: "s-1", EventType: "created"}}
	expectedQuery := url.Values{"limit": []string{"5"}}
	httpmock.RegisterResponderWithQuery("GET", testBaseURL+"/samples/s-1/timeline", expectedQuery,
		envelopeResponder(t, 200, events))

	got, err := svcs.Timeline.SampleTimeline(context.Background(), "s-1", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "created", got[0].EventType)
}
