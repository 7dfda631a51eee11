package state

import (
	"time"

	"github.com/THANGADHIWAN/focal/internal/service"
)

// Stores bundles one store per entity collection.
type Stores struct {
	Samples   *SampleStore
	Products  *ProductStore
	Metadata  *MetadataStore
	Equipment *EquipmentStore
	Inventory *InventoryStore
}

// New builds the full store set over the given services. metadataTTL
// bounds how long reference data is cached.
func New(svcs *service.Services, metadataTTL time.Duration) *Stores {
	return &Stores{
		Samples:   NewSampleStore(svcs, DefaultDebounce),
		Products:  NewProductStore(svcs, DefaultDebounce),
		Metadata:  NewMetadataStore(svcs, metadataTTL),
		Equipment: NewEquipmentStore(svcs),
		Inventory: NewInventoryStore(svcs),
	}
}

// Close cancels pending debounced work across all stores.
func (s *Stores) Close() {
	s.Samples.Close()
	s.Products.Close()
}
