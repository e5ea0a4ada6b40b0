package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=3&size=10", nil)
	page, size := PageParams(r)
	assert.Equal(t, 3, page)
	assert.Equal(t, 10, size)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	page, size = PageParams(r)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, size)

	r = httptest.NewRequest(http.MethodGet, "/?page=-1&size=abc", nil)
	page, size = PageParams(r)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, size)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Paginate(items, 1, 2)
	assert.Equal(t, []int{1, 2}, p.Items)
	assert.Equal(t, 5, p.Total)

	p = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, p.Items)

	// out of range keeps the total but yields no items
	p = Paginate(items, 9, 2)
	assert.Equal(t, []int{}, p.Items)
	assert.Equal(t, 5, p.Total)

	p = Paginate([]int{}, 1, 2)
	require.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.Total)
}

func TestErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "notice not found")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"notice not found"}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
