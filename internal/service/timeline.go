package service

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

// TimelineService reads the append-only audit timelines. Events are never
// created or mutated client-side.
type TimelineService struct {
	client *api.Client
	log    *slog.Logger
}

// NewTimelineService creates a timeline service over the shared client.
func NewTimelineService(client *api.Client) *TimelineService {
	return &TimelineService{client: client, log: serviceLogger("timeline-service")}
}

// SampleTimeline returns the audit events of a sample, newest first.
// A positive limit caps the number of events.
func (s *TimelineService) SampleTimeline(ctx context.Context, sampleID string, limit int) ([]model.TimelineEvent, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}

	var events []model.TimelineEvent
	if err := s.client.Get(ctx, s.client.Endpoints().SampleTimeline(sampleID), q, &events); err != nil {
		s.log.Error("fetch sample timeline failed", "sample_id", sampleID, "error", err)
		return nil, err
	}
	if events == nil {
		events = []model.TimelineEvent{}
	}
	return events, nil
}

// AliquotTimeline returns the audit events of one aliquot.
func (s *TimelineService) AliquotTimeline(ctx context.Context, sampleID, aliquotID string) ([]model.TimelineEvent, error) {
	var events []model.TimelineEvent
	if err := s.client.Get(ctx, s.client.Endpoints().AliquotTimeline(sampleID, aliquotID), nil, &events); err != nil {
		s.log.Error("fetch aliquot timeline failed", "sample_id", sampleID, "aliquot_id", aliquotID, "error", err)
		return nil, err
	}
	if events == nil {
		events = []model.TimelineEvent{}
	}
	return events, nil
}

// TestTimeline returns the audit events of one test.
func (s *TimelineService) TestTimeline(ctx context.Context, sampleID, testID string) ([]model.TimelineEvent, error) {
	var events []model.TimelineEvent
	if err := s.client.Get(ctx, s.client.Endpoints().TestTimeline(sampleID, testID), nil, &events); err != nil {
		s.log.Error("fetch test timeline failed", "sample_id", sampleID, "test_id", testID, "error", err)
		return nil, err
	}
	if events == nil {
		events = []model.TimelineEvent{}
	}
	return events, nil
}
