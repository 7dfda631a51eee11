// Package service implements the stateless HTTP-calling modules, one per
// backend resource. Services translate typed operations into exactly one
// HTTP call each, apply resource-specific request shaping, and unwrap the
// response envelope. They never retry and never hold state; failures are
// logged and returned to the caller.
package service

import (
	"log/slog"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/logging"
)

// Services bundles one service per backend resource over a shared client.
type Services struct {
	Samples   *SampleService
	Aliquots  *AliquotService
	Tests     *TestService
	Timeline  *TimelineService
	Products  *ProductService
	Metadata  *MetadataService
	Equipment *EquipmentService
	Storage   *StorageService
	Inventory *InventoryService
}

// New builds the full service set over the given client.
func New(client *api.Client) *Services {
	return &Services{
		Samples:   NewSampleService(client),
		Aliquots:  NewAliquotService(client),
		Tests:     NewTestService(client),
		Timeline:  NewTimelineService(client),
		Products:  NewProductService(client),
		Metadata:  NewMetadataService(client),
		Equipment: NewEquipmentService(client),
		Storage:   NewStorageService(client),
		Inventory: NewInventoryService(client),
	}
}

func serviceLogger(name string) *slog.Logger {
	if l := logging.ForService(name); l != nil {
		return l
	}
	return slog.Default().With("service", name)
}
