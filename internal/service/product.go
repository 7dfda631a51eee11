package service

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/THANGADHIWAN/focal/internal/api"
	"github.com/THANGADHIWAN/focal/internal/model"
)

// ProductService calls the /products resource. Products belong to the
// newer backend generation: item-shaped pages and PUT updates.
type ProductService struct {
	client *api.Client
	log    *slog.Logger
}

// NewProductService creates a product service over the shared client.
func NewProductService(client *api.Client) *ProductService {
	return &ProductService{client: client, log: serviceLogger("product-service")}
}

func productFilterValues(paging api.PageParams, filter model.ProductFilter) url.Values {
	q := paging.Values()
	statuses := make([]string, 0, len(filter.Statuses))
	for _, st := range filter.Statuses {
		statuses = append(statuses, string(st))
	}
	api.AddMulti(q, "status", statuses)
	api.AddSearch(q, filter.Search)
	return q
}

// List returns one page of products.
func (s *ProductService) List(ctx context.Context, paging api.PageParams, filter model.ProductFilter) (api.Page[model.Product], error) {
	var page api.Page[model.Product]
	err := s.client.Get(ctx, s.client.Endpoints().Products(), productFilterValues(paging, filter), &page)
	if err != nil {
		s.log.Error("list products failed", "error", err)
		return api.EmptyPage[model.Product](paging.Page, paging.Limit), err
	}
	if page.Items == nil {
		page.Items = []model.Product{}
	}
	return page, nil
}

// GetByID returns the product, or (nil, nil) when the server reports it
// missing. Detail views treat a deleted product as an empty screen, not a
// failure.
func (s *ProductService) GetByID(ctx context.Context, id int) (*model.Product, error) {
	var product *model.Product
	if err := s.client.Get(ctx, s.client.Endpoints().Product(id), nil, &product); err != nil {
		if api.IsNotFound(err) {
			return nil, nil
		}
		s.log.Error("get product failed", "product_id", id, "error", err)
		return nil, err
	}
	return product, nil
}

// Create registers a product and returns the server-assigned entity.
func (s *ProductService) Create(ctx context.Context, in model.ProductCreate) (*model.Product, error) {
	var product model.Product
	if err := s.client.Post(ctx, s.client.Endpoints().Products(), in, &product); err != nil {
		s.log.Error("create product failed", "error", err)
		return nil, err
	}
	return &product, nil
}

// Update replaces the mutable fields via PUT and returns the updated
// entity.
func (s *ProductService) Update(ctx context.Context, id int, patch model.ProductUpdate) (*model.Product, error) {
	var product model.Product
	if err := s.client.Put(ctx, s.client.Endpoints().Product(id), patch, &product); err != nil {
		s.log.Error("update product failed", "product_id", id, "error", err)
		return nil, err
	}
	return &product, nil
}

// Delete removes the product.
func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, s.client.Endpoints().Product(id)); err != nil {
		s.log.Error("delete product failed", "product_id", id, "error", err)
		return err
	}
	return nil
}

// Summaries returns the minimal product list used by pickers.
func (s *ProductService) Summaries(ctx context.Context) ([]model.ProductSummary, error) {
	var summaries []model.ProductSummary
	if err := s.client.Get(ctx, s.client.Endpoints().ProductSummaries(), nil, &summaries); err != nil {
		s.log.Error("list product summaries failed", "error", err)
		return nil, err
	}
	if summaries == nil {
		summaries = []model.ProductSummary{}
	}
	return summaries, nil
}

// SamplesForProduct returns the samples associated with a product.
func (s *ProductService) SamplesForProduct(ctx context.Context, id int) ([]model.Sample, error) {
	var samples []model.Sample
	if err := s.client.Get(ctx, s.client.Endpoints().ProductSamples(id), nil, &samples); err != nil {
		s.log.Error("list product samples failed", "product_id", id, "error", err)
		return nil, err
	}
	if samples == nil {
		samples = []model.Sample{}
	}
	return samples, nil
}

// TestsForProduct returns the tests associated with a product.
func (s *ProductService) TestsForProduct(ctx context.Context, id int) ([]model.Test, error) {
	var tests []model.Test
	if err := s.client.Get(ctx, s.client.Endpoints().ProductTests(id), nil, &tests); err != nil {
		s.log.Error("list product tests failed", "product_id", id, "error", err)
		return nil, err
	}
	if tests == nil {
		tests = []model.Test{}
	}
	return tests, nil
}
