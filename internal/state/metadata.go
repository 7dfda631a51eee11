package state

import (
	"context"
	"log/slog"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/THANGADHIWAN/focal/internal/errors"
	"github.com/THANGADHIWAN/focal/internal/model"
	"github.com/THANGADHIWAN/focal/internal/service"
)

const metadataCacheKey = "metadata-bundle"

// MetadataStore loads the reference-data categories once per session and
// serves them from memory. Categories load concurrently and fail
// independently: one unreachable table leaves the other seven usable.
type MetadataStore struct {
	metadata *service.MetadataService
	log      *slog.Logger
	cache    *gocache.Cache

	mu     sync.RWMutex
	bundle model.MetadataBundle
	errs   map[string]error
	loaded bool
}

// NewMetadataStore creates a metadata store. cacheTTL bounds how long a
// loaded bundle is served before Load fetches again.
func NewMetadataStore(svcs *service.Services, cacheTTL time.Duration) *MetadataStore {
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &MetadataStore{
		metadata: svcs.Metadata,
		log:      storeLogger("metadata-store"),
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
		errs:     map[string]error{},
	}
}

// Load fetches all categories concurrently. A fresh cached bundle short
// circuits the fetch; pass force to bypass it. The returned error joins
// the per-category failures; categories that succeeded are stored either
// way.
func (s *MetadataStore) Load(ctx context.Context, force bool) error {
	if !force {
		if cached, ok := s.cache.Get(metadataCacheKey); ok {
			s.mu.Lock()
			s.bundle = cached.(model.MetadataBundle)
			s.loaded = true
			s.mu.Unlock()
			return nil
		}
	}

	var (
		bundleMu sync.Mutex
		bundle   model.MetadataBundle
		errs     = map[string]error{}
	)
	record := func(category string, err error, apply func()) {
		bundleMu.Lock()
		defer bundleMu.Unlock()
		if err != nil {
			errs[category] = err
			return
		}
		apply()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.metadata.SampleTypes(gctx)
		record("sample_types", err, func() { bundle.SampleTypes = v })
		return nil
	})
	g.Go(func() error {
		v, err := s.metadata.SampleStatuses(gctx)
		record("sample_statuses", err, func() { bundle.SampleStatuses = v })
		return nil
	})
	g.Go(func() error {
		v, err := s.metadata.LabLocations(gctx)
		record("lab_locations", err, func() { bundle.LabLocations = v })
		return nil
	})
	g.Go(func() error {
		v, err := s.metadata.Users(gctx)
		record("users", err, func() { bundle.Users = v })
		return nil
	})
	g.Go(func() error {
		v, err := s.metadata.StorageLocations(gctx)
		record("storage_locations", err, func() { bundle.StorageLocations = v })
		return nil
	})
	g.Go(func() error {
		v, err := s.metadata.EquipmentTypes(gctx)
		record("equipment_types", err, func() { bundle.EquipmentTypes = v })
		return nil
	})
	g.Go(func() error {
		v, err := s.metadata.EquipmentStatuses(gctx)
		record("equipment_statuses", err, func() { bundle.EquipmentStatuses = v })
		return nil
	})
	g.Go(func() error {
		v, err := s.metadata.Equipment(gctx)
		record("equipment", err, func() { bundle.Equipment = v })
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	s.bundle = bundle
	s.errs = errs
	s.loaded = true
	s.mu.Unlock()

	if len(errs) == 0 {
		s.cache.Set(metadataCacheKey, bundle, gocache.DefaultExpiration)
		return nil
	}

	joined := make([]error, 0, len(errs))
	for category, err := range errs {
		s.log.Error("metadata category load failed", "category", category, "error", err)
		joined = append(joined, err)
	}
	return errors.Join(joined...)
}

// Invalidate drops the cached bundle so the next Load fetches fresh data.
func (s *MetadataStore) Invalidate() {
	s.cache.Delete(metadataCacheKey)
}

// Loaded reports whether Load has completed at least once.
func (s *MetadataStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// CategoryErr returns the load error of one category, nil if it loaded.
func (s *MetadataStore) CategoryErr(category string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errs[category]
}

// Bundle returns the loaded reference data.
func (s *MetadataStore) Bundle() model.MetadataBundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle
}

// SampleTypes returns the sample type vocabulary.
func (s *MetadataStore) SampleTypes() []model.SampleType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle.SampleTypes
}

// SampleStatuses returns the sample status vocabulary.
func (s *MetadataStore) SampleStatuses() []model.SampleStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle.SampleStatuses
}

// LabLocations returns the lab location vocabulary.
func (s *MetadataStore) LabLocations() []model.LabLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle.LabLocations
}

// Users returns the lab staff accounts.
func (s *MetadataStore) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle.Users
}

// StorageLocations returns the named storage places.
func (s *MetadataStore) StorageLocations() []model.StorageLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle.StorageLocations
}

// UserName resolves a user id to a display name, falling back to the id.
func (s *MetadataStore) UserName(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.bundle.Users {
		if u.ID == id {
			return u.Name
		}
	}
	return id
}
