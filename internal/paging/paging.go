// Package paging converts page/size query parameters into limit/offset and
// shapes paginated responses.
package paging

import "math"

const (
	DefaultSize = 10
	MaxSize     = 100
)

// Page is the paginated response body.
type Page[T any] struct {
	TotalItems  int64 `json:"totalItems"`
	Items       []T   `json:"items"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

// Limits computes limit and offset for a 1-indexed page. Page zero and
// negative pages keep the page*size offset.
func Limits(page, size int) (limit, offset int) {
	limit = size
	if page > 0 {
		offset = (page - 1) * size
	} else {
		offset = page * size
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Normalize clamps size to 1..MaxSize, defaulting to DefaultSize, and page to >= 0.
func Normalize(page, size int) (int, int) {
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	if page < 0 {
		page = 0
	}
	return page, size
}

// Data reshapes a page of rows and the unpaginated total into a Page.
func Data[T any](rows []T, total int64, page, limit int) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Page[T]{
		TotalItems:  total,
		Items:       rows,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
