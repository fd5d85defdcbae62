// AngelaMos | 2026
// query_test.go

package core

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListParams_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/stores", nil)

	params := ParseListParams(r)

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultPageSize, params.PageSize)
	assert.Empty(t, params.SortBy)
	assert.Empty(t, params.Search)
}

func TestParseListParams_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"non-numeric page", "page=abc&limit=20", DefaultPage, 20},
		{"zero page", "page=0&limit=20", DefaultPage, 20},
		{"negative page", "page=-3", DefaultPage, DefaultPageSize},
		{"non-numeric limit", "page=2&limit=ten", 2, DefaultPageSize},
		{"zero limit", "limit=0", DefaultPage, DefaultPageSize},
		{"limit above cap", "limit=5000", DefaultPage, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/stores?"+tt.query, nil)

			params := ParseListParams(r)

			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.pageSize, params.PageSize)
		})
	}
}

func TestParseListParams_PassesThroughStrings(t *testing.T) {
	r := httptest.NewRequest(
		"GET",
		"/stores?sortBy=name&sortOrder=desc&search=coffee&searchBy=address",
		nil,
	)

	params := ParseListParams(r)

	assert.Equal(t, "name", params.SortBy)
	assert.Equal(t, "desc", params.SortOrder)
	assert.Equal(t, "coffee", params.Search)
	assert.Equal(t, "address", params.SearchBy)
}

func TestListParams_Offset(t *testing.T) {
	params := ListParams{Page: 3, PageSize: 10}
	assert.Equal(t, 20, params.Offset())

	params = ListParams{Page: 1, PageSize: 25}
	assert.Equal(t, 0, params.Offset())
}

var testFields = FieldMap{
	Sortable: map[string]string{
		"name":       "s.name",
		"created_at": "s.created_at",
	},
	Searchable: map[string]string{
		"name":    "s.name",
		"address": "s.address",
	},
	DefaultSort:   "name",
	DefaultOrder:  SortAsc,
	DefaultSearch: "name",
}

func TestFieldMap_OrderBy(t *testing.T) {
	tests := []struct {
		name   string
		params ListParams
		want   string
	}{
		{
			"allowed field and order",
			ListParams{SortBy: "created_at", SortOrder: "desc"},
			"s.created_at DESC",
		},
		{
			"lowercase order is accepted",
			ListParams{SortBy: "name", SortOrder: "asc"},
			"s.name ASC",
		},
		{
			"unknown sort field falls back to default",
			ListParams{SortBy: "password_hash", SortOrder: "ASC"},
			"s.name ASC",
		},
		{
			"injection attempt falls back to default",
			ListParams{SortBy: "name; DROP TABLE users--", SortOrder: "ASC"},
			"s.name ASC",
		},
		{
			"invalid order falls back to default order",
			ListParams{SortBy: "name", SortOrder: "sideways"},
			"s.name ASC",
		},
		{
			"empty params use both defaults",
			ListParams{},
			"s.name ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testFields.OrderBy(tt.params))
		})
	}
}

func TestFieldMap_SearchColumn(t *testing.T) {
	assert.Equal(
		t,
		"s.address",
		testFields.SearchColumn(ListParams{SearchBy: "address"}),
	)
	assert.Equal(
		t,
		"s.name",
		testFields.SearchColumn(ListParams{SearchBy: "role"}),
	)
	assert.Equal(t, "s.name", testFields.SearchColumn(ListParams{}))
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeLike(tt.input))
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%coffee%", LikePattern("coffee"))
	assert.Equal(t, `%100\%%`, LikePattern("100%"))
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		total      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"first of many", 1, 10, 35, 4, true, false},
		{"middle page", 2, 10, 35, 4, true, true},
		{"last page", 4, 10, 35, 4, false, true},
		{"exact multiple", 2, 10, 20, 2, false, true},
		{"single page", 1, 10, 3, 1, false, false},
		{"empty result", 1, 10, 0, 0, false, false},
		{"empty result beyond page one", 5, 10, 0, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.pageSize, tt.total)

			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
		})
	}
}
