package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
	"github.com/THANGADHIWAN/focal/internal/service"
)

// SampleStore holds the current page of samples plus the active paging and
// filter state. Every mutation goes through the backend first; local state
// is reconciled from the server-returned entity, never from the request.
type SampleStore struct {
	samples  *service.SampleService
	aliquots *service.AliquotService
	tests    *service.TestService
	log      *slog.Logger

	mu      sync.RWMutex
	items   []*model.Sample
	total   int
	pages   int
	hasMore bool
	paging  api.PageParams
	filter  model.SampleFilter
	loading bool
	closed  bool
	err     error

	seq requestSeq
	deb *debouncer
}

// NewSampleStore creates a sample store over the given services.
func NewSampleStore(svcs *service.Services, debounce time.Duration) *SampleStore {
	return &SampleStore{
		samples:  svcs.Samples,
		aliquots: svcs.Aliquots,
		tests:    svcs.Tests,
		log:      storeLogger("sample-store"),
		items:    []*model.Sample{},
		paging:   api.PageParams{Page: 1, Limit: 20},
		deb:      newDebouncer(debounce),
	}
}

// Close cancels any pending debounced refresh. Responses of refreshes
// still in flight are discarded when they arrive.
func (s *SampleStore) Close() {
	s.deb.Stop()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Samples returns a snapshot of the current page.
func (s *SampleStore) Samples() []*model.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Sample, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the locally held sample with the given id, or nil.
func (s *SampleStore) Get(id string) *model.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, smp := range s.items {
		if smp.ID == id {
			return smp
		}
	}
	return nil
}

// Total returns the server-reported total count across all pages.
func (s *SampleStore) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Loading reports whether a refresh is in flight.
func (s *SampleStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error of the most recent failed operation, cleared by
// the next successful refresh.
func (s *SampleStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Filter returns the active filter.
func (s *SampleStore) Filter() model.SampleFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Refresh reloads the current page from the backend. If a newer refresh is
// issued while this one is in flight, the older response is discarded so
// displayed state always reflects the newest request.
func (s *SampleStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	token := s.seq.next()
	s.loading = true
	paging, filter := s.paging, s.filter
	s.mu.Unlock()

	page, err := s.samples.List(ctx, paging, filter)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.seq.isLatest(token) {
		s.log.Debug("discarding stale sample list response", "token", token)
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.err = nil
	items := make([]*model.Sample, len(page.Data))
	for i := range page.Data {
		items[i] = &page.Data[i]
	}
	s.items = items
	s.total = page.TotalCount
	s.pages = page.TotalPages
	s.hasMore = page.HasMore
	return nil
}

// SetFilter replaces the filter, resets to the first page, and schedules a
// debounced refresh. A burst of filter changes results in one request
// carrying the final filter.
func (s *SampleStore) SetFilter(ctx context.Context, filter model.SampleFilter) {
	s.mu.Lock()
	s.filter = filter
	s.paging.Page = 1
	s.mu.Unlock()

	s.deb.Trigger(func() {
		if err := s.Refresh(ctx); err != nil {
			s.log.Error("debounced refresh failed", "error", err)
		}
	})
}

// SetPage moves to the given page and refreshes immediately.
func (s *SampleStore) SetPage(ctx context.Context, page int) error {
	s.mu.Lock()
	s.paging.Page = page
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Create registers the sample and appends the server-returned entity.
func (s *SampleStore) Create(ctx context.Context, in model.SampleCreate) (*model.Sample, error) {
	created, err := s.samples.Create(ctx, in)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	s.items = append(s.items, created)
	s.total++
	return created, nil
}

// Update patches the sample and replaces the local copy with the
// server-returned entity. Other samples keep their identity.
func (s *SampleStore) Update(ctx context.Context, id string, patch model.SampleUpdate) (*model.Sample, error) {
	updated, err := s.samples.Update(ctx, id, patch)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	s.replaceLocked(updated)
	return updated, nil
}

// Delete removes the sample on the backend and locally. A missing local
// entry is a no-op; the backend already confirmed the delete.
func (s *SampleStore) Delete(ctx context.Context, id string) error {
	if err := s.samples.Delete(ctx, id); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	for i, smp := range s.items {
		if smp.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.total--
			break
		}
	}
	return nil
}

// AddAliquot splits an aliquot off the sample and grafts the
// server-returned entity onto the locally held parent.
func (s *SampleStore) AddAliquot(ctx context.Context, sampleID string, in model.AliquotCreate) (*model.Aliquot, error) {
	created, err := s.aliquots.Create(ctx, sampleID, in)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	for _, smp := range s.items {
		if smp.ID == sampleID {
			smp.Aliquots = append(smp.Aliquots, *created)
			break
		}
	}
	return created, nil
}

// UpdateAliquotLocation moves the aliquot and patches the local copy in
// place under its parent sample.
func (s *SampleStore) UpdateAliquotLocation(ctx context.Context, sampleID, aliquotID, location string) (*model.Aliquot, error) {
	moved, err := s.aliquots.UpdateLocation(ctx, sampleID, aliquotID, location)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	for _, smp := range s.items {
		if smp.ID != sampleID {
			continue
		}
		for i := range smp.Aliquots {
			if smp.Aliquots[i].ID == aliquotID {
				smp.Aliquots[i] = *moved
				break
			}
		}
		break
	}
	return moved, nil
}

// AddTest schedules a test on the aliquot and grafts the server-returned
// entity under the locally held aliquot.
func (s *SampleStore) AddTest(ctx context.Context, sampleID, aliquotID string, in model.TestCreate) (*model.Test, error) {
	created, err := s.tests.Create(ctx, sampleID, aliquotID, in)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	for _, smp := range s.items {
		if smp.ID != sampleID {
			continue
		}
		for i := range smp.Aliquots {
			if smp.Aliquots[i].ID == aliquotID {
				smp.Aliquots[i].Tests = append(smp.Aliquots[i].Tests, *created)
				break
			}
		}
		break
	}
	return created, nil
}

// UpdateTest patches the test and replaces the local copy under its
// aliquot.
func (s *SampleStore) UpdateTest(ctx context.Context, sampleID, aliquotID, testID string, patch model.TestUpdate) (*model.Test, error) {
	updated, err := s.tests.Update(ctx, sampleID, aliquotID, testID, patch)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	for _, smp := range s.items {
		if smp.ID != sampleID {
			continue
		}
		for i := range smp.Aliquots {
			if smp.Aliquots[i].ID != aliquotID {
				continue
			}
			for j := range smp.Aliquots[i].Tests {
				if smp.Aliquots[i].Tests[j].ID == testID {
					smp.Aliquots[i].Tests[j] = *updated
					break
				}
			}
			break
		}
		break
	}
	return updated, nil
}

// VolumeLeft returns the unconsumed volume of the locally held sample, or
// zero when the sample is not held.
func (s *SampleStore) VolumeLeft(id string) float64 {
	if smp := s.Get(id); smp != nil {
		return smp.VolumeLeft()
	}
	return 0
}

// ExportCSV exports the sample list using the active filter.
func (s *SampleStore) ExportCSV(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	filter := s.filter
	s.mu.RUnlock()
	return s.samples.ExportCSV(ctx, filter)
}

func (s *SampleStore) replaceLocked(updated *model.Sample) {
	for i, smp := range s.items {
		if smp.ID == updated.ID {
			s.items[i] = updated
			return
		}
	}
}

func (s *SampleStore) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
