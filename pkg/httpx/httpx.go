// Package httpx holds small JSON response helpers shared by all handlers.
package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// WriteJSON encodes v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes an error body of the form {"detail": "..."}.
func Error(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, map[string]string{"detail": detail})
}

// Page is the pagination envelope returned by list endpoints.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

const defaultPageSize = 50

// PageParams extracts page/size query parameters with defaults.
func PageParams(r *http.Request) (page, size int) {
	page, size = 1, defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && v > 0 {
		size = v
	}
	return page, size
}

// Paginate slices items into a Page. Out-of-range pages yield an empty item
// list with the total preserved.
func Paginate[T any](items []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	total := len(items)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	out := items[start:end]
	if out == nil {
		out = []T{}
	}
	return Page[T]{Items: out, Total: total, Page: page, Size: size}
}
