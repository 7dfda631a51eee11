package api

import "encoding/json"

// Envelope is the wrapper every backend response carries:
// { data, status, success } plus optional message/error fields.
type Envelope struct {
	Data    json.RawMessage `json:"data"`
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

// Page is the pagination shape of the product-generation endpoints:
// { items, total, page, size, pages }.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

// LegacyPage is the pagination shape of the sample-generation endpoints:
// { data, totalCount, totalPages, currentPage, pageSize, hasMore }.
//
// The two shapes come from different backend generations and are kept as
// distinct types on purpose; unifying them would require guessing which
// generation a given endpoint belongs to.
type LegacyPage[T any] struct {
	Data        []T  `json:"data"`
	TotalCount  int  `json:"totalCount"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	HasMore     bool `json:"hasMore"`
}

// EmptyPage returns a zero-item page carrying the requested paging values,
// used when a list endpoint returns no data.
func EmptyPage[T any](page, size int) Page[T] {
	return Page[T]{Items: []T{}, Page: page, Size: size}
}

// EmptyLegacyPage is the LegacyPage counterpart of EmptyPage.
func EmptyLegacyPage[T any](page, size int) LegacyPage[T] {
	return LegacyPage[T]{Data: []T{}, CurrentPage: page, PageSize: size}
}

// errorBody is the error detail shape the backend nests under the envelope
// error field, with the FastAPI-style detail fallback.
type errorBody struct {
	Detail  string `json:"detail,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
