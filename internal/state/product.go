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

// ProductStore holds the current page of products plus the active paging
// and filter state.
type ProductStore struct {
	products *service.ProductService
	log      *slog.Logger

	mu      sync.RWMutex
	items   []*model.Product
	total   int
	paging  api.PageParams
	filter  model.ProductFilter
	loading bool
	closed  bool
	err     error

	seq requestSeq
	deb *debouncer
}

// NewProductStore creates a product store over the given services.
func NewProductStore(svcs *service.Services, debounce time.Duration) *ProductStore {
	return &ProductStore{
		products: svcs.Products,
		log:      storeLogger("product-store"),
		items:    []*model.Product{},
		paging:   api.PageParams{Page: 1, Limit: 20},
		deb:      newDebouncer(debounce),
	}
}

// Close cancels any pending debounced refresh. Responses of refreshes
// still in flight are discarded when they arrive.
func (s *ProductStore) Close() {
	s.deb.Stop()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Products returns a snapshot of the current page.
func (s *ProductStore) Products() []*model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Product, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the locally held product with the given id, or nil.
func (s *ProductStore) Get(id int) *model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.items {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Total returns the server-reported total count across all pages.
func (s *ProductStore) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Loading reports whether a refresh is in flight.
func (s *ProductStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error of the most recent failed operation.
func (s *ProductStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Refresh reloads the current page, discarding responses superseded by a
// newer refresh.
func (s *ProductStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	token := s.seq.next()
	s.loading = true
	paging, filter := s.paging, s.filter
	s.mu.Unlock()

	page, err := s.products.List(ctx, paging, filter)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.seq.isLatest(token) {
		s.log.Debug("discarding stale product list response", "token", token)
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.err = nil
	items := make([]*model.Product, len(page.Items))
	for i := range page.Items {
		items[i] = &page.Items[i]
	}
	s.items = items
	s.total = page.Total
	return nil
}

// SetFilter replaces the filter, resets to the first page, and schedules a
// debounced refresh.
func (s *ProductStore) SetFilter(ctx context.Context, filter model.ProductFilter) {
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

// Detail fetches one product directly from the backend. A missing product
// yields (nil, nil), matching how detail views treat deleted entities.
func (s *ProductStore) Detail(ctx context.Context, id int) (*model.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		s.setErr(err)
		return nil, err
	}
	return product, nil
}

// Create registers the product and appends the server-returned entity.
func (s *ProductStore) Create(ctx context.Context, in model.ProductCreate) (*model.Product, error) {
	created, err := s.products.Create(ctx, in)
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

// Update replaces the product and the local copy with the server-returned
// entity.
func (s *ProductStore) Update(ctx context.Context, id int, patch model.ProductUpdate) (*model.Product, error) {
	updated, err := s.products.Update(ctx, id, patch)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	for i, p := range s.items {
		if p.ID == id {
			s.items[i] = updated
			break
		}
	}
	return updated, nil
}

// Delete removes the product on the backend and locally. A missing local
// entry is a no-op.
func (s *ProductStore) Delete(ctx context.Context, id int) error {
	if err := s.products.Delete(ctx, id); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	for i, p := range s.items {
		if p.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.total--
			break
		}
	}
	return nil
}

func (s *ProductStore) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
