package service

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

// StorageService calls the physical storage resources: freezers, boxes,
// the placement hierarchy, and storage location records.
type StorageService struct {
	client *api.Client
	log    *slog.Logger
}

// NewStorageService creates a storage service over the shared client.
func NewStorageService(client *api.Client) *StorageService {
	return &StorageService{client: client, log: serviceLogger("storage-service")}
}

// Boxes returns all storage boxes, optionally scoped to one freezer.
func (s *StorageService) Boxes(ctx context.Context, freezerID string) ([]model.StorageBox, error) {
	var q url.Values
	if freezerID != "" {
		q = url.Values{"freezer_id": []string{freezerID}}
	}

	var boxes []model.StorageBox
	if err := s.client.Get(ctx, s.client.Endpoints().StorageBoxes(), q, &boxes); err != nil {
		s.log.Error("list storage boxes failed", "error", err)
		return nil, err
	}
	if boxes == nil {
		boxes = []model.StorageBox{}
	}
	return boxes, nil
}

// CreateBox adds a box and returns the server-assigned entity.
func (s *StorageService) CreateBox(ctx context.Context, in model.StorageBoxCreate) (*model.StorageBox, error) {
	var box model.StorageBox
	if err := s.client.Post(ctx, s.client.Endpoints().StorageBoxes(), in, &box); err != nil {
		s.log.Error("create storage box failed", "error", err)
		return nil, err
	}
	return &box, nil
}

// Freezers returns all freezers.
func (s *StorageService) Freezers(ctx context.Context) ([]model.Freezer, error) {
	var freezers []model.Freezer
	if err := s.client.Get(ctx, s.client.Endpoints().StorageFreezers(), nil, &freezers); err != nil {
		s.log.Error("list freezers failed", "error", err)
		return nil, err
	}
	if freezers == nil {
		freezers = []model.Freezer{}
	}
	return freezers, nil
}

// CreateFreezer adds a freezer and returns the server-assigned entity.
func (s *StorageService) CreateFreezer(ctx context.Context, in model.FreezerCreate) (*model.Freezer, error) {
	var freezer model.Freezer
	if err := s.client.Post(ctx, s.client.Endpoints().StorageFreezers(), in, &freezer); err != nil {
		s.log.Error("create freezer failed", "error", err)
		return nil, err
	}
	return &freezer, nil
}

// Hierarchy returns the freezer to box tree used by placement pickers.
func (s *StorageService) Hierarchy(ctx context.Context) (*model.StorageHierarchy, error) {
	var tree model.StorageHierarchy
	if err := s.client.Get(ctx, s.client.Endpoints().StorageHierarchy(), nil, &tree); err != nil {
		s.log.Error("fetch storage hierarchy failed", "error", err)
		return nil, err
	}
	if tree.Freezers == nil {
		tree.Freezers = []model.FreezerNode{}
	}
	return &tree, nil
}

// AvailableSlots returns the free positions in a box.
func (s *StorageService) AvailableSlots(ctx context.Context, boxID string) ([]model.AvailableSlot, error) {
	q := url.Values{"box_id": []string{boxID}}

	var slots []model.AvailableSlot
	if err := s.client.Get(ctx, s.client.Endpoints().StorageAvailableSlots(), q, &slots); err != nil {
		s.log.Error("list available slots failed", "box_id", boxID, "error", err)
		return nil, err
	}
	if slots == nil {
		slots = []model.AvailableSlot{}
	}
	return slots, nil
}

// CreateLocation adds a named storage location record.
func (s *StorageService) CreateLocation(ctx context.Context, in model.StorageLocationCreate) (*model.StorageLocation, error) {
	var loc model.StorageLocation
	if err := s.client.Post(ctx, s.client.Endpoints().Metadata("storage_locations"), in, &loc); err != nil {
		s.log.Error("create storage location failed", "error", err)
		return nil, err
	}
	return &loc, nil
}

// UpdateLocation applies a partial-field patch to a storage location.
func (s *StorageService) UpdateLocation(ctx context.Context, id int, patch model.StorageLocationUpdate) (*model.StorageLocation, error) {
	var loc model.StorageLocation
	if err := s.client.Patch(ctx, s.client.Endpoints().MetadataStorageLocation(id), patch, &loc); err != nil {
		s.log.Error("update storage location failed", "location_id", id, "error", err)
		return nil, err
	}
	return &loc, nil
}

// DeleteLocation removes a storage location record.
func (s *StorageService) DeleteLocation(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, s.client.Endpoints().MetadataStorageLocation(id)); err != nil {
		s.log.Error("delete storage location failed", "location_id", id, "error", err)
		return err
	}
	return nil
}
