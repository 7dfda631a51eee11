package service

import (
	"context"
	"log/slog"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

// EquipmentService manages lab instruments. Equipment lives under the
// metadata router but unlike the other reference tables supports full CRUD.
type EquipmentService struct {
	client *api.Client
	log    *slog.Logger
}

// NewEquipmentService creates an equipment service over the shared client.
func NewEquipmentService(client *api.Client) *EquipmentService {
	return &EquipmentService{client: client, log: serviceLogger("equipment-service")}
}

// List returns all registered equipment.
func (s *EquipmentService) List(ctx context.Context) ([]model.Equipment, error) {
	var equipment []model.Equipment
	if err := s.client.Get(ctx, s.client.Endpoints().Metadata("equipment"), nil, &equipment); err != nil {
		s.log.Error("list equipment failed", "error", err)
		return nil, err
	}
	if equipment == nil {
		equipment = []model.Equipment{}
	}
	return equipment, nil
}

// Get returns one instrument or nil if the server responds with no data.
func (s *EquipmentService) Get(ctx context.Context, id int) (*model.Equipment, error) {
	var equipment *model.Equipment
	if err := s.client.Get(ctx, s.client.Endpoints().MetadataEquipment(id), nil, &equipment); err != nil {
		s.log.Error("get equipment failed", "equipment_id", id, "error", err)
		return nil, err
	}
	return equipment, nil
}

// Create registers an instrument and returns the server-assigned entity.
func (s *EquipmentService) Create(ctx context.Context, in model.EquipmentCreate) (*model.Equipment, error) {
	var equipment model.Equipment
	if err := s.client.Post(ctx, s.client.Endpoints().Metadata("equipment"), in, &equipment); err != nil {
		s.log.Error("create equipment failed", "error", err)
		return nil, err
	}
	return &equipment, nil
}

// Update applies a partial-field patch and returns the updated entity.
func (s *EquipmentService) Update(ctx context.Context, id int, patch model.EquipmentUpdate) (*model.Equipment, error) {
	var equipment model.Equipment
	if err := s.client.Patch(ctx, s.client.Endpoints().MetadataEquipment(id), patch, &equipment); err != nil {
		s.log.Error("update equipment failed", "equipment_id", id, "error", err)
		return nil, err
	}
	return &equipment, nil
}

// Delete removes the instrument.
func (s *EquipmentService) Delete(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, s.client.Endpoints().MetadataEquipment(id)); err != nil {
		s.log.Error("delete equipment failed", "equipment_id", id, "error", err)
		return err
	}
	return nil
}
