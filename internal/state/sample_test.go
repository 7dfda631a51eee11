package state

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

func samplePageResponder(t *testing.T, samples []model.Sample) httpmock.Responder {
	t.Helper()
	return envelopeResponder(t, 200, api.LegacyPage[model.Sample]{
		Data:        samples,
		TotalCount:  len(samples),
		TotalPages:  1,
		CurrentPage: 1,
	})
}

func TestSampleStoreRefresh(t *testing.T) {
	svcs := newTestServices(t)
	store := NewSampleStore(svcs, DefaultDebounce)
	defer store.Close()

	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		samplePageResponder(t, []model.Sample{
			{ID: "s-1", Code: "SMP-001", VolumeML: 100},
			{ID: "s-2", Code: "SMP-002", VolumeML: 50},
		}))

	require.NoError(t, store.Refresh(context.Background()))
	assert.Len(t, store.Samples(), 2)
	assert.Equal(t, 2, store.Total())
	assert.False(t, store.Loading())
	assert.NoError(t, store.Err())
}

func TestSampleStoreRefresh_ErrorKeepsPreviousItems(t *testing.T) {
	svcs := newTestServices(t)
	store := NewSampleStore(svcs, DefaultDebounce)
	defer store.Close()

	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		samplePageResponder(t, []model.Sample{{ID: "s-1"}}))
	require.NoError(t, store.Refresh(context.Background()))

	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		errorResponder(t, 500, "database unavailable"))
	require.Error(t, store.Refresh(context.Background()))

	assert.Len(t, store.Samples(), 1)
	assert.Error(t, store.Err())
}

func TestSampleStoreCreate_AppendsServerEntity(t *testing.T) {
	svcs := newTestServices(t)
	store := NewSampleStore(svcs, DefaultDebounce)
	defer store.Close()

	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		samplePageResponder(t, []model.Sample{{ID: "s-1"}}))
	require.NoError(t, store.Refresh(context.Background()))

	httpmock.RegisterResponder("POST", testBaseURL+"/samples",
		envelopeResponder(t, 201, model.Sample{ID: "s-2", Code: "SMP-002", Name: "serum"}))

	created, err := store.Create(context.Background(), model.SampleCreate{Name: "serum", VolumeML: 10, CreatedBy: "u-1"})
	require.NoError(t, err)

	held := store.Samples()
	require.Len(t, held, 2)
	// The appended entry is the server's, carrying the assigned id and code.
	assert.Equal(t, "s-2", held[1].ID)
	assert.Equal(t, "SMP-002", held[1].Code)
	assert.Same(t, created, held[1])
	assert.Equal(t, 2, store.Total())
}

func TestSampleStoreDelete_MissingLocalEntryIsNoOp(t *testing.T) {
	svcs := newTestServices(t)
	store := NewSampleStore(svcs, DefaultDebounce)
	defer store.Close()

	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		samplePageResponder(t, []model.Sample{{ID: "s-1"}}))
	require.NoError(t, store.Refresh(context.Background()))

	httpmock.RegisterResponder("DELETE", testBaseURL+"/samples/s-99",
		envelopeResponder(t, 200, nil))

	require.NoError(t, store.Delete(context.Background(), "s-99"))
	assert.Len(t, store.Samples(), 1)
}

func TestSampleStoreUpdate_UntouchedSamplesKeepIdentity(t *testing.T) {
	svcs := newTestServices(t)
	store := NewSampleStore(svcs, DefaultDebounce)
	defer store.Close()

	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		samplePageResponder(t, []model.Sample{{ID: "s-1", Status: "Received"}, {ID: "s-2"}}))
	require.NoError(t, store.Refresh(context.Background()))

	before := store.Samples()
	untouched := before[1]

	httpmock.RegisterResponder("PATCH", testBaseURL+"/samples/s-1",
		envelopeResponder(t, 200, model.Sample{ID: "s-1", Status: "In_Testing"}))

	status := "In_Testing"
	updated, err := store.Update(context.Background(), "s-1", model.SampleUpdate{Status: &status})
	require.NoError(t, err)

	after := store.Samples()
	assert.Same(t, updated, after[0])
	assert.Equal(t, "In_Testing", after[0].Status)
	assert.Same(t, untouched, after[1])
}

func TestSampleStoreAddAliquot_VolumeLeftRecomputed(t *testing.T) {
	svcs := newTestServices(t)
	store := NewSampleStore(svcs, DefaultDebounce)
	defer store.Close()

	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		samplePageResponder(t, []model.Sample{{ID: "s-1", VolumeML: 100}}))
	require.NoError(t, store.Refresh(context.Background()))
	assert.InDelta(t, 100.0, store.VolumeLeft("s-1"), 0.001)

	httpmock.RegisterResponder("POST", testBaseURL+"/samples/s-1/aliquots",
		envelopeResponder(t, 201, model.Aliquot{ID: "a-1", SampleID: "s-1", VolumeML: 30}))

	_, err := store.AddAliquot(context.Background(), "s-1", model.AliquotCreate{VolumeML: 30, CreatedBy: "u-1"})
	require.NoError(t, err)

	assert.InDelta(t, 70.0, store.VolumeLeft("s-1"), 0.001)
	require.Len(t, store.Get("s-1").Aliquots, 1)
}

func TestSampleStoreAddTest_GraftedUnderAliquot(t *testing.T) {
	svcs := newTestServices(t)
	store := NewSampleStore(svcs, DefaultDebounce)
	defer store.Close()

	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		samplePageResponder(t, []model.Sample{{
			ID: "s-1", VolumeML: 100,
			Aliquots: []model.Aliquot{{ID: "a-1", SampleID: "s-1", VolumeML: 20}},
		}}))
	require.NoError(t, store.Refresh(context.Background()))

	httpmock.RegisterResponder("POST", testBaseURL+"/samples/s-1/aliquots/a-1/tests",
		envelopeResponder(t, 201, model.Test{
			ID: "t-1", SampleID: "s-1", AliquotID: "a-1", Name: "pH", Status: model.TestStatusPending,
		}))

	_, err := store.AddTest(context.Background(), "s-1", "a-1", model.TestCreate{Name: "pH"})
	require.NoError(t, err)

	held := store.Get("s-1")
	require.NotNil(t, held)
	require.Len(t, held.Aliquots[0].Tests, 1)
	assert.Equal(t, model.TestStatusPending, held.Aliquots[0].Tests[0].Status)
}

func TestSampleStoreSetFilter_DebouncedToSingleRequest(t *testing.T) {
	svcs := newTestServices(t)
	store := NewSampleStore(svcs, 25*time.Millisecond)
	defer store.Close()

	var (
		mu       sync.Mutex
		searches []string
	)
	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		func(req *http.Request) (*http.Response, error) {
			mu.Lock()
			searches = append(searches, req.URL.Query().Get("search"))
			mu.Unlock()

			raw, _ := json.Marshal(api.LegacyPage[model.Sample]{Data: []model.Sample{}})
			return httpmock.NewJsonResponse(200, map[string]any{
				"data": json.RawMessage(raw), "status": 200, "success": true,
			})
		})

	ctx := context.Background()
	store.SetFilter(ctx, model.SampleFilter{Search: "a"})
	store.SetFilter(ctx, model.SampleFilter{Search: "ab"})
	store.SetFilter(ctx, model.SampleFilter{Search: "abc"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(searches) >= 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, searches, 1)
	assert.Equal(t, "abc", searches[0])
}

func TestSampleStoreRefresh_StaleResponseDiscarded(t *testing.T) {
	svcs := newTestServices(t)
	store := NewSampleStore(svcs, DefaultDebounce)
	defer store.Close()

	var calls int
	var mu sync.Mutex
	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		func(req *http.Request) (*http.Response, error) {
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()

			samples := []model.Sample{{ID: "s-new"}}
			if first {
				// The superseded request finishes last.
				time.Sleep(120 * time.Millisecond)
				samples = []model.Sample{{ID: "s-old"}}
			}
			raw, _ := json.Marshal(api.LegacyPage[model.Sample]{Data: samples, TotalCount: 1})
			return httpmock.NewJsonResponse(200, map[string]any{
				"data": json.RawMessage(raw), "status": 200, "success": true,
			})
		})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = store.Refresh(context.Background())
	}()
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, store.Refresh(context.Background()))
	wg.Wait()

	held := store.Samples()
	require.Len(t, held, 1)
	assert.Equal(t, "s-new", held[0].ID)
}

func TestSampleStoreClose_DiscardsInFlightRefresh(t *testing.T) {
	svcs := newTestServices(t)
	store := NewSampleStore(svcs, DefaultDebounce)

	release := make(chan struct{})
	httpmock.RegisterResponder("GET", testBaseURL+"/samples",
		func(req *http.Request) (*http.Response, error) {
			<-release
			return samplePageResponder(t, []model.Sample{{ID: "s-late"}})(req)
		})

	done := make(chan error, 1)
	go func() { done <- store.Refresh(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	store.Close()
	close(release)

	// The refresh completes without error but its response is dropped.
	require.NoError(t, <-done)
	assert.Empty(t, store.Samples())
}
