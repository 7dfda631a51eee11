package service

import (
	"context"
	"log/slog"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

// AliquotService calls the aliquot resource nested under a sample.
type AliquotService struct {
	client *api.Client
	log    *slog.Logger
}

// NewAliquotService creates an aliquot service over the shared client.
func NewAliquotService(client *api.Client) *AliquotService {
	return &AliquotService{client: client, log: serviceLogger("aliquot-service")}
}

// List returns all aliquots of a sample.
func (s *AliquotService) List(ctx context.Context, sampleID string) ([]model.Aliquot, error) {
	var aliquots []model.Aliquot
	if err := s.client.Get(ctx, s.client.Endpoints().Aliquots(sampleID), nil, &aliquots); err != nil {
		s.log.Error("list aliquots failed", "sample_id", sampleID, "error", err)
		return nil, err
	}
	if aliquots == nil {
		aliquots = []model.Aliquot{}
	}
	return aliquots, nil
}

// Get returns the aliquot or nil if the server responds with no data.
func (s *AliquotService) Get(ctx context.Context, sampleID, aliquotID string) (*model.Aliquot, error) {
	var aliquot *model.Aliquot
	if err := s.client.Get(ctx, s.client.Endpoints().Aliquot(sampleID, aliquotID), nil, &aliquot); err != nil {
		s.log.Error("get aliquot failed", "sample_id", sampleID, "aliquot_id", aliquotID, "error", err)
		return nil, err
	}
	return aliquot, nil
}

// Create splits a new aliquot off the sample and returns the
// server-assigned entity.
func (s *AliquotService) Create(ctx context.Context, sampleID string, in model.AliquotCreate) (*model.Aliquot, error) {
	var aliquot model.Aliquot
	if err := s.client.Post(ctx, s.client.Endpoints().Aliquots(sampleID), in, &aliquot); err != nil {
		s.log.Error("create aliquot failed", "sample_id", sampleID, "error", err)
		return nil, err
	}
	return &aliquot, nil
}

// Update applies a partial-field patch and returns the updated entity.
func (s *AliquotService) Update(ctx context.Context, sampleID, aliquotID string, patch model.AliquotUpdate) (*model.Aliquot, error) {
	var aliquot model.Aliquot
	if err := s.client.Patch(ctx, s.client.Endpoints().Aliquot(sampleID, aliquotID), patch, &aliquot); err != nil {
		s.log.Error("update aliquot failed", "sample_id", sampleID, "aliquot_id", aliquotID, "error", err)
		return nil, err
	}
	return &aliquot, nil
}

// UpdateLocation moves the aliquot to a new physical location.
func (s *AliquotService) UpdateLocation(ctx context.Context, sampleID, aliquotID, location string) (*model.Aliquot, error) {
	body := struct {
		Location string `json:"location"`
	}{Location: location}

	var aliquot model.Aliquot
	if err := s.client.Patch(ctx, s.client.Endpoints().AliquotLocation(sampleID, aliquotID), body, &aliquot); err != nil {
		s.log.Error("update aliquot location failed", "sample_id", sampleID, "aliquot_id", aliquotID, "error", err)
		return nil, err
	}
	return &aliquot, nil
}

// Delete removes the aliquot.
func (s *AliquotService) Delete(ctx context.Context, sampleID, aliquotID string) error {
	if err := s.client.Delete(ctx, s.client.Endpoints().Aliquot(sampleID, aliquotID)); err != nil {
		s.log.Error("delete aliquot failed", "sample_id", sampleID, "aliquot_id", aliquotID, "error", err)
		return err
	}
	return nil
}
