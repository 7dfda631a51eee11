package service

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

// InventoryService calls the /inventory resources: materials, lots, usage
// logs and adjustments. Inventory uses skip/limit paging. The backend owns
// lot quantities; after any usage log or adjustment the caller re-fetches
// the lot instead of recomputing locally.
type InventoryService struct {
	client *api.Client
	log    *slog.Logger
}

// NewInventoryService creates an inventory service over the shared client.
func NewInventoryService(client *api.Client) *InventoryService {
	return &InventoryService{client: client, log: serviceLogger("inventory-service")}
}

func inventoryFilterValues(paging api.SkipParams, filter model.InventoryFilter) url.Values {
	q := paging.Values()
	api.AddMulti(q, "material_type", filter.MaterialTypes)
	api.AddMulti(q, "status", filter.Statuses)
	api.AddSearch(q, filter.Search)
	return q
}

// Materials returns one slice of materials under skip/limit paging.
func (s *InventoryService) Materials(ctx context.Context, paging api.SkipParams, filter model.InventoryFilter) ([]model.Material, error) {
	var materials []model.Material
	if err := s.client.Get(ctx, s.client.Endpoints().Materials(), inventoryFilterValues(paging, filter), &materials); err != nil {
		s.log.Error("list materials failed", "error", err)
		return nil, err
	}
	if materials == nil {
		materials = []model.Material{}
	}
	return materials, nil
}

// Material returns one material or nil if the server responds with no data.
func (s *InventoryService) Material(ctx context.Context, id int) (*model.Material, error) {
	var material *model.Material
	if err := s.client.Get(ctx, s.client.Endpoints().Material(id), nil, &material); err != nil {
		s.log.Error("get material failed", "material_id", id, "error", err)
		return nil, err
	}
	return material, nil
}

// CreateMaterial registers a material and returns the server-assigned
// entity.
func (s *InventoryService) CreateMaterial(ctx context.Context, in model.MaterialCreate) (*model.Material, error) {
	var material model.Material
	if err := s.client.Post(ctx, s.client.Endpoints().Materials(), in, &material); err != nil {
		s.log.Error("create material failed", "error", err)
		return nil, err
	}
	return &material, nil
}

// UpdateMaterial updates the material over PUT, the verb this older
// endpoint generation uses, and returns the updated entity.
func (s *InventoryService) UpdateMaterial(ctx context.Context, id int, in model.MaterialUpdate) (*model.Material, error) {
	var material model.Material
	if err := s.client.Put(ctx, s.client.Endpoints().Material(id), in, &material); err != nil {
		s.log.Error("update material failed", "material_id", id, "error", err)
		return nil, err
	}
	return &material, nil
}

// DeleteMaterial removes the material.
func (s *InventoryService) DeleteMaterial(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, s.client.Endpoints().Material(id)); err != nil {
		s.log.Error("delete material failed", "material_id", id, "error", err)
		return err
	}
	return nil
}

// Lots returns material lots, optionally scoped to one material.
func (s *InventoryService) Lots(ctx context.Context, paging api.SkipParams, materialID int) ([]model.MaterialLot, error) {
	q := paging.Values()
	if materialID > 0 {
		q.Set("material_id", strconv.Itoa(materialID))
	}

	var lots []model.MaterialLot
	if err := s.client.Get(ctx, s.client.Endpoints().MaterialLots(), q, &lots); err != nil {
		s.log.Error("list material lots failed", "error", err)
		return nil, err
	}
	if lots == nil {
		lots = []model.MaterialLot{}
	}
	return lots, nil
}

// Lot returns one lot or nil if the server responds with no data.
func (s *InventoryService) Lot(ctx context.Context, id int) (*model.MaterialLot, error) {
	var lot *model.MaterialLot
	if err := s.client.Get(ctx, s.client.Endpoints().MaterialLot(id), nil, &lot); err != nil {
		s.log.Error("get material lot failed", "lot_id", id, "error", err)
		return nil, err
	}
	return lot, nil
}

// CreateLot receives a lot and returns the server-assigned entity.
func (s *InventoryService) CreateLot(ctx context.Context, in model.MaterialLotCreate) (*model.MaterialLot, error) {
	var lot model.MaterialLot
	if err := s.client.Post(ctx, s.client.Endpoints().MaterialLots(), in, &lot); err != nil {
		s.log.Error("create material lot failed", "error", err)
		return nil, err
	}
	return &lot, nil
}

// UpdateLot updates the lot over PUT and returns the updated entity.
func (s *InventoryService) UpdateLot(ctx context.Context, id int, in model.MaterialLotUpdate) (*model.MaterialLot, error) {
	var lot model.MaterialLot
	if err := s.client.Put(ctx, s.client.Endpoints().MaterialLot(id), in, &lot); err != nil {
		s.log.Error("update material lot failed", "lot_id", id, "error", err)
		return nil, err
	}
	return &lot, nil
}

// DeleteLot removes the lot.
func (s *InventoryService) DeleteLot(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, s.client.Endpoints().MaterialLot(id)); err != nil {
		s.log.Error("delete material lot failed", "lot_id", id, "error", err)
		return err
	}
	return nil
}

// UsageLogs returns usage logs, optionally scoped to one lot.
func (s *InventoryService) UsageLogs(ctx context.Context, paging api.SkipParams, lotID int) ([]model.MaterialUsageLog, error) {
	q := paging.Values()
	if lotID > 0 {
		q.Set("material_lot_id", strconv.Itoa(lotID))
	}

	var logs []model.MaterialUsageLog
	if err := s.client.Get(ctx, s.client.Endpoints().UsageLogs(), q, &logs); err != nil {
		s.log.Error("list usage logs failed", "error", err)
		return nil, err
	}
	if logs == nil {
		logs = []model.MaterialUsageLog{}
	}
	return logs, nil
}

// CreateUsageLog records a consumption against a lot. The server applies
// the quantity delta; callers re-fetch the lot to observe it.
func (s *InventoryService) CreateUsageLog(ctx context.Context, in model.UsageLogCreate) (*model.MaterialUsageLog, error) {
	var entry model.MaterialUsageLog
	if err := s.client.Post(ctx, s.client.Endpoints().UsageLogs(), in, &entry); err != nil {
		s.log.Error("create usage log failed", "lot_id", in.MaterialLotID, "error", err)
		return nil, err
	}
	return &entry, nil
}

// DeleteUsageLog removes a usage log entry.
func (s *InventoryService) DeleteUsageLog(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, s.client.Endpoints().UsageLog(id)); err != nil {
		s.log.Error("delete usage log failed", "usage_log_id", id, "error", err)
		return err
	}
	return nil
}

// Adjustments returns inventory adjustments, optionally scoped to one lot.
func (s *InventoryService) Adjustments(ctx context.Context, paging api.SkipParams, lotID int) ([]model.MaterialInventoryAdjustment, error) {
	q := paging.Values()
	if lotID > 0 {
		q.Set("material_lot_id", strconv.Itoa(lotID))
	}

	var adjustments []model.MaterialInventoryAdjustment
	if err := s.client.Get(ctx, s.client.Endpoints().Adjustments(), q, &adjustments); err != nil {
		s.log.Error("list adjustments failed", "error", err)
		return nil, err
	}
	if adjustments == nil {
		adjustments = []model.MaterialInventoryAdjustment{}
	}
	return adjustments, nil
}

// CreateAdjustment records a signed quantity correction against a lot.
func (s *InventoryService) CreateAdjustment(ctx context.Context, in model.AdjustmentCreate) (*model.MaterialInventoryAdjustment, error) {
	var adjustment model.MaterialInventoryAdjustment
	if err := s.client.Post(ctx, s.client.Endpoints().Adjustments(), in, &adjustment); err != nil {
		s.log.Error("create adjustment failed", "lot_id", in.MaterialLotID, "error", err)
		return nil, err
	}
	return &adjustment, nil
}

// DeleteAdjustment removes an adjustment entry.
func (s *InventoryService) DeleteAdjustment(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, s.client.Endpoints().Adjustment(id)); err != nil {
		s.log.Error("delete adjustment failed", "adjustment_id", id, "error", err)
		return err
	}
	return nil
}
