package model

import "time"

// ProductStatus is the fixed product lifecycle vocabulary.
type ProductStatus string

const (
	ProductNotStarted ProductStatus = "NOT_STARTED"
	ProductInProgress ProductStatus = "IN_PROGRESS"
	ProductCompleted  ProductStatus = "COMPLETED"
)

// Product is an independent aggregate root. Samples and tests reference it
// through summary counts only; there is no ownership relation client-side.
type Product struct {
	ID          int           `json:"id"`
	Code        string        `json:"product_code"`
	Name        string        `json:"product_name"`
	Description string        `json:"description,omitempty"`
	Status      ProductStatus `json:"status"`
	SampleCount int           `json:"sample_count"`
	TestCount   int           `json:"test_count"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ProductSummary is the minimal shape returned by the summaries endpoint.
type ProductSummary struct {
	ID     int           `json:"id"`
	Code   string        `json:"product_code"`
	Name   string        `json:"name"`
	Status ProductStatus `json:"status"`
}

// ProductCreate is the request shape for creating a product.
type ProductCreate struct {
	Name        string        `json:"product_name"`
	Description string        `json:"description,omitempty"`
	Status      ProductStatus `json:"status,omitempty"`
}

// ProductUpdate is a partial-field patch for a product.
type ProductUpdate struct {
	Name        *string        `json:"product_name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *ProductStatus `json:"status,omitempty"`
}

// ProductFilter is the structured filter for product list queries.
type ProductFilter struct {
	Statuses []ProductStatus
	Search   string
}
