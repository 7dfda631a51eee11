package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
	"github.com/THANGADHIWAN/focal/internal/service"
)

// InventoryStore holds materials and lots. Lot quantities belong to the
// backend: after a usage log or adjustment the affected lot is re-fetched
// and taken verbatim, never recomputed from the local delta.
type InventoryStore struct {
	inventory *service.InventoryService
	log       *slog.Logger

	mu        sync.RWMutex
	materials []*model.Material
	lots      []*model.MaterialLot
	paging    api.SkipParams
	filter    model.InventoryFilter
	loading   bool
	err       error
	seq       requestSeq
}

// NewInventoryStore creates an inventory store over the given services.
func NewInventoryStore(svcs *service.Services) *InventoryStore {
	return &InventoryStore{
		inventory: svcs.Inventory,
		log:       storeLogger("inventory-store"),
		materials: []*model.Material{},
		lots:      []*model.MaterialLot{},
		paging:    api.SkipParams{Limit: 50},
	}
}

// Materials returns a snapshot of the held materials.
func (s *InventoryStore) Materials() []*model.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Material, len(s.materials))
	copy(out, s.materials)
	return out
}

// Lots returns a snapshot of the held lots.
func (s *InventoryStore) Lots() []*model.MaterialLot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.MaterialLot, len(s.lots))
	copy(out, s.lots)
	return out
}

// Lot returns the locally held lot with the given id, or nil.
func (s *InventoryStore) Lot(id int) *model.MaterialLot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, lot := range s.lots {
		if lot.ID == id {
			return lot
		}
	}
	return nil
}

// Loading reports whether a refresh is in flight.
func (s *InventoryStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error of the most recent failed operation.
func (s *InventoryStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// SetFilter replaces the filter and resets the skip offset. Inventory
// screens refresh explicitly, so no debounce here.
func (s *InventoryStore) SetFilter(filter model.InventoryFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
	s.paging.Skip = 0
}

// RefreshMaterials reloads the material slice under the active filter.
func (s *InventoryStore) RefreshMaterials(ctx context.Context) error {
	s.mu.Lock()
	token := s.seq.next()
	s.loading = true
	paging, filter := s.paging, s.filter
	s.mu.Unlock()

	list, err := s.inventory.Materials(ctx, paging, filter)

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
	materials := make([]*model.Material, len(list))
	for i := range list {
		materials[i] = &list[i]
	}
	s.materials = materials
	return nil
}

// RefreshLots reloads the lots of one material, or all lots when
// materialID is zero.
func (s *InventoryStore) RefreshLots(ctx context.Context, materialID int) error {
	s.mu.Lock()
	token := s.seq.next()
	s.loading = true
	paging := s.paging
	s.mu.Unlock()

	list, err := s.inventory.Lots(ctx, paging, materialID)

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
	lots := make([]*model.MaterialLot, len(list))
	for i := range list {
		lots[i] = &list[i]
	}
	s.lots = lots
	return nil
}

// CreateMaterial registers the material and appends the server-returned
// entity.
func (s *InventoryStore) CreateMaterial(ctx context.Context, in model.MaterialCreate) (*model.Material, error) {
	created, err := s.inventory.CreateMaterial(ctx, in)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	s.materials = append(s.materials, created)
	return created, nil
}

// CreateLot receives the lot and appends the server-returned entity.
func (s *InventoryStore) CreateLot(ctx context.Context, in model.MaterialLotCreate) (*model.MaterialLot, error) {
	created, err := s.inventory.CreateLot(ctx, in)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	s.lots = append(s.lots, created)
	return created, nil
}

// RecordUsage posts a usage log, then re-fetches the affected lot so the
// held quantity is the server's, not a local subtraction.
func (s *InventoryStore) RecordUsage(ctx context.Context, in model.UsageLogCreate) (*model.MaterialUsageLog, error) {
	entry, err := s.inventory.CreateUsageLog(ctx, in)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	if err := s.refetchLot(ctx, in.MaterialLotID); err != nil {
		return entry, err
	}
	return entry, nil
}

// RecordAdjustment posts an adjustment, then re-fetches the affected lot.
func (s *InventoryStore) RecordAdjustment(ctx context.Context, in model.AdjustmentCreate) (*model.MaterialInventoryAdjustment, error) {
	entry, err := s.inventory.CreateAdjustment(ctx, in)
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	if err := s.refetchLot(ctx, in.MaterialLotID); err != nil {
		return entry, err
	}
	return entry, nil
}

func (s *InventoryStore) refetchLot(ctx context.Context, lotID int) error {
	lot, err := s.inventory.Lot(ctx, lotID)
	if err != nil {
		s.log.Error("lot re-fetch failed", "lot_id", lotID, "error", err)
		s.setErr(err)
		return err
	}
	if lot == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	for i, held := range s.lots {
		if held.ID == lot.ID {
			s.lots[i] = lot
			return nil
		}
	}
	s.lots = append(s.lots, lot)
	return nil
}

func (s *InventoryStore) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
