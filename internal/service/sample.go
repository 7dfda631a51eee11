package service

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

// SampleService calls the /samples resource.
type SampleService struct {
	client *api.Client
	log    *slog.Logger
}

// NewSampleService creates a sample service over the shared client.
func NewSampleService(client *api.Client) *SampleService {
	return &SampleService{client: client, log: serviceLogger("sample-service")}
}

// sampleFilterValues encodes the structured filter with repeated keys for
// the multi-select fields.
func sampleFilterValues(paging api.PageParams, filter model.SampleFilter) url.Values {
	q := paging.Values()
	api.AddMulti(q, "type", filter.Types)
	api.AddMulti(q, "status", filter.Statuses)
	api.AddMulti(q, "location", filter.Locations)
	api.AddMulti(q, "owner", filter.Owners)
	api.AddSearch(q, filter.Search)
	api.AddDateRange(q, filter.CreatedFrom, filter.CreatedTo)
	return q
}

// List returns one page of samples. Absent data yields an empty page, not
// an error.
func (s *SampleService) List(ctx context.Context, paging api.PageParams, filter model.SampleFilter) (api.LegacyPage[model.Sample], error) {
	var page api.LegacyPage[model.Sample]
	err := s.client.Get(ctx, s.client.Endpoints().Samples(), sampleFilterValues(paging, filter), &page)
	if err != nil {
		s.log.Error("list samples failed", "error", err)
		return api.EmptyLegacyPage[model.Sample](paging.Page, paging.Limit), err
	}
	if page.Data == nil {
		page.Data = []model.Sample{}
	}
	return page, nil
}

// Get returns the sample or nil if the server responds with no data.
func (s *SampleService) Get(ctx context.Context, id string) (*model.Sample, error) {
	var sample *model.Sample
	if err := s.client.Get(ctx, s.client.Endpoints().Sample(id), nil, &sample); err != nil {
		s.log.Error("get sample failed", "sample_id", id, "error", err)
		return nil, err
	}
	return sample, nil
}

// Create registers a sample and returns the server-assigned entity.
func (s *SampleService) Create(ctx context.Context, in model.SampleCreate) (*model.Sample, error) {
	var sample model.Sample
	if err := s.client.Post(ctx, s.client.Endpoints().Samples(), in, &sample); err != nil {
		s.log.Error("create sample failed", "error", err)
		return nil, err
	}
	return &sample, nil
}

// Update applies a partial-field patch and returns the updated entity.
func (s *SampleService) Update(ctx context.Context, id string, patch model.SampleUpdate) (*model.Sample, error) {
	var sample model.Sample
	if err := s.client.Patch(ctx, s.client.Endpoints().Sample(id), patch, &sample); err != nil {
		s.log.Error("update sample failed", "sample_id", id, "error", err)
		return nil, err
	}
	return &sample, nil
}

// Delete removes the sample. Success is no error; there is no payload.
func (s *SampleService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, s.client.Endpoints().Sample(id)); err != nil {
		s.log.Error("delete sample failed", "sample_id", id, "error", err)
		return err
	}
	return nil
}

// ExportCSV requests the CSV export with the same filter shape as List and
// returns the raw payload. Saving it anywhere is the caller's concern.
func (s *SampleService) ExportCSV(ctx context.Context, filter model.SampleFilter) ([]byte, error) {
	q := url.Values{}
	api.AddMulti(q, "type", filter.Types)
	api.AddMulti(q, "status", filter.Statuses)
	api.AddMulti(q, "location", filter.Locations)
	api.AddMulti(q, "owner", filter.Owners)
	api.AddSearch(q, filter.Search)
	api.AddDateRange(q, filter.CreatedFrom, filter.CreatedTo)

	payload, err := s.client.GetRaw(ctx, s.client.Endpoints().SampleExportCSV(), q)
	if err != nil {
		s.log.Error("export samples failed", "error", err)
		return nil, err
	}
	return payload, nil
}

// TestConnection reports backend reachability. Transport failures mean not
// connected; any HTTP response, even an error status, means connected.
func (s *SampleService) TestConnection(ctx context.Context) bool {
	return s.client.TestConnection(ctx)
}
