package service

import (
	"context"
	"log/slog"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

// MetadataService reads the reference-data categories. Each category is a
// small table fetched whole; callers cache them for the session.
type MetadataService struct {
	client *api.Client
	log    *slog.Logger
}

// NewMetadataService creates a metadata service over the shared client.
func NewMetadataService(client *api.Client) *MetadataService {
	return &MetadataService{client: client, log: serviceLogger("metadata-service")}
}

func fetchCategory[T any](ctx context.Context, s *MetadataService, category string) ([]T, error) {
	var out []T
	if err := s.client.Get(ctx, s.client.Endpoints().Metadata(category), nil, &out); err != nil {
		s.log.Error("fetch metadata failed", "category", category, "error", err)
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// SampleTypes returns the sample type vocabulary.
func (s *MetadataService) SampleTypes(ctx context.Context) ([]model.SampleType, error) {
	return fetchCategory[model.SampleType](ctx, s, "sample_types")
}

// SampleStatuses returns the sample status vocabulary.
func (s *MetadataService) SampleStatuses(ctx context.Context) ([]model.SampleStatus, error) {
	return fetchCategory[model.SampleStatus](ctx, s, "sample_statuses")
}

// LabLocations returns the lab location vocabulary.
func (s *MetadataService) LabLocations(ctx context.Context) ([]model.LabLocation, error) {
	return fetchCategory[model.LabLocation](ctx, s, "lab_locations")
}

// Users returns the lab staff accounts.
func (s *MetadataService) Users(ctx context.Context) ([]model.User, error) {
	return fetchCategory[model.User](ctx, s, "users")
}

// StorageLocations returns the named storage places.
func (s *MetadataService) StorageLocations(ctx context.Context) ([]model.StorageLocation, error) {
	return fetchCategory[model.StorageLocation](ctx, s, "storage_locations")
}

// EquipmentTypes returns the equipment type vocabulary.
func (s *MetadataService) EquipmentTypes(ctx context.Context) ([]model.EquipmentType, error) {
	return fetchCategory[model.EquipmentType](ctx, s, "equipment_types")
}

// EquipmentStatuses returns the equipment status vocabulary.
func (s *MetadataService) EquipmentStatuses(ctx context.Context) ([]model.EquipmentStatus, error) {
	return fetchCategory[model.EquipmentStatus](ctx, s, "equipment_statuses")
}

// Equipment returns the full equipment list.
func (s *MetadataService) Equipment(ctx context.Context) ([]model.Equipment, error) {
	return fetchCategory[model.Equipment](ctx, s, "equipment")
}

// All returns every reference-data category in one call.
func (s *MetadataService) All(ctx context.Context) (*model.MetadataBundle, error) {
	var bundle model.MetadataBundle
	if err := s.client.Get(ctx, s.client.Endpoints().Metadata("all"), nil, &bundle); err != nil {
		s.log.Error("fetch metadata bundle failed", "error", err)
		return nil, err
	}
	return &bundle, nil
}

// Health returns the backend health report.
func (s *MetadataService) Health(ctx context.Context) (*model.Health, error) {
	var health model.Health
	if err := s.client.Get(ctx, s.client.Endpoints().Metadata("health"), nil, &health); err != nil {
		s.log.Error("fetch health failed", "error", err)
		return nil, err
	}
	return &health, nil
}
