package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/THANGADHIWAN/focal/internal/model"
	"github.com/THANGADHIWAN/focal/internal/service"
)

// EquipmentStore holds the full equipment list. The table is small enough
// to load whole; there is no paging.
type EquipmentStore struct {
	equipment *service.EquipmentService
	log       *slog.Logger

	mu      sync.RWMutex
	items   []*model.Equipment
	loading bool
	err     error
	seq     requestSeq
}

// NewEquipmentStore creates an equipment store over the given services.
func NewEquipmentStore(svcs *service.Services) *EquipmentStore {
	return &EquipmentStore{
		equipment: svcs.Equipment,
		log:       storeLogger("equipment-store"),
		items:     []*model.Equipment{},
	}
}

// Equipment returns a snapshot of the held list.
func (s *EquipmentStore) Equipment() []*model.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Equipment, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the locally held instrument with the given id, or nil.
func (s *EquipmentStore) Get(id int) *model.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, eq := range s.items {
		if eq.ID == id {
			return eq
		}
	}
	return nil
}

// Loading reports whether a refresh is in flight.
func (s *EquipmentStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error of the most recent failed operation.
func (s *EquipmentStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Refresh reloads the equipment list, discarding responses superseded by a
// newer refresh.
func (s *EquipmentStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	token := s.seq.next()
	s.loading = true
	s.mu.Unlock()

	list, err := s.equipment.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.seq.isLatest(token) {
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.err = nil
	items := make([]*model.Equipment, len(list))
	for i := range list {
		items[i] = &list[i]
	}
	s.items = items
	return nil
}

// Create registers the instrument and appends the server-returned entity.
func (s *EquipmentStore) Create(ctx context.Context, in model.EquipmentCreate) (*model.Equipment, error) {
	created, err := s.equipment.Create(ctx, in)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	s.items = append(s.items, created)
	return created, nil
}

// Update patches the instrument and replaces the local copy.
func (s *EquipmentStore) Update(ctx context.Context, id int, patch model.EquipmentUpdate) (*model.Equipment, error) {
	updated, err := s.equipment.Update(ctx, id, patch)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	for i, eq := range s.items {
		if eq.ID == id {
			s.items[i] = updated
			break
		}
	}
	return updated, nil
}

// Delete removes the instrument on the backend and locally. A missing
// local entry is a no-op.
func (s *EquipmentStore) Delete(ctx context.Context, id int) error {
	if err := s.equipment.Delete(ctx, id); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	for i, eq := range s.items {
		if eq.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return nil
}

func (s *EquipmentStore) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
