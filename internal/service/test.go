package service

import (
	"context"
	"log/slog"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

// TestService calls the test resource nested three levels deep under a
// sample and aliquot.
type TestService struct {
	client *api.Client
	log    *slog.Logger
}

// NewTestService creates a test service over the shared client.
func NewTestService(client *api.Client) *TestService {
	return &TestService{client: client, log: serviceLogger("test-service")}
}

// List returns all tests scheduled on an aliquot.
func (s *TestService) List(ctx context.Context, sampleID, aliquotID string) ([]model.Test, error) {
	var tests []model.Test
	if err := s.client.Get(ctx, s.client.Endpoints().Tests(sampleID, aliquotID), nil, &tests); err != nil {
		s.log.Error("list tests failed", "sample_id", sampleID, "aliquot_id", aliquotID, "error", err)
		return nil, err
	}
	if tests == nil {
		tests = []model.Test{}
	}
	return tests, nil
}

// Get returns the test or nil if the server responds with no data.
func (s *TestService) Get(ctx context.Context, sampleID, aliquotID, testID string) (*model.Test, error) {
	var test *model.Test
	if err := s.client.Get(ctx, s.client.Endpoints().Test(sampleID, aliquotID, testID), nil, &test); err != nil {
		s.log.Error("get test failed", "test_id", testID, "error", err)
		return nil, err
	}
	return test, nil
}

// Create schedules a test on the aliquot and returns the server-assigned
// entity.
func (s *TestService) Create(ctx context.Context, sampleID, aliquotID string, in model.TestCreate) (*model.Test, error) {
	var test model.Test
	if err := s.client.Post(ctx, s.client.Endpoints().Tests(sampleID, aliquotID), in, &test); err != nil {
		s.log.Error("create test failed", "sample_id", sampleID, "aliquot_id", aliquotID, "error", err)
		return nil, err
	}
	return &test, nil
}

// Update applies a partial-field patch and returns the updated entity.
func (s *TestService) Update(ctx context.Context, sampleID, aliquotID, testID string, patch model.TestUpdate) (*model.Test, error) {
	var test model.Test
	if err := s.client.Patch(ctx, s.client.Endpoints().Test(sampleID, aliquotID, testID), patch, &test); err != nil {
		s.log.Error("update test failed", "test_id", testID, "error", err)
		return nil, err
	}
	return &test, nil
}

// Delete removes the test.
func (s *TestService) Delete(ctx context.Context, sampleID, aliquotID, testID string) error {
	if err := s.client.Delete(ctx, s.client.Endpoints().Test(sampleID, aliquotID, testID)); err != nil {
		s.log.Error("delete test failed", "test_id", testID, "error", err)
		return err
	}
	return nil
}
