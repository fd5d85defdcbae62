// AngelaMos | 2026
// query.go

package core

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	SortAsc  = "ASC"
	SortDesc = "DESC"

	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListParams carries the untrusted list-query inputs shared by every
// collection endpoint. Field values are only ever used as bound query
// parameters; field *names* pass through a FieldMap allow-list first.
type ListParams struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Search    string
	SearchBy  string
}

// ParseListParams reads list parameters from the query string. Non-numeric or
// non-positive page/limit values fall back to the defaults rather than erroring.
func ParseListParams(r *http.Request) ListParams {
	q := r.URL.Query()

	params := ListParams{
		Page:      parseIntParam(q.Get("page"), DefaultPage),
		PageSize:  parseIntParam(q.Get("limit"), DefaultPageSize),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
		Search:    q.Get("search"),
		SearchBy:  q.Get("searchBy"),
	}
	params.Normalize()

	return params
}

func parseIntParam(val string, defaultVal int) int {
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// FieldMap is a resource's fixed mapping from logical sort/search keys to
// physical column references. Requested fields outside the allow-list fall
// back silently to the resource default; this is the injection guard for
// identifiers, since column names cannot be bound as parameters.
type FieldMap struct {
	Sortable      map[string]string
	Searchable    map[string]string
	DefaultSort   string
	DefaultOrder  string
	DefaultSearch string
}

// OrderBy resolves the ORDER BY clause for params. Only allow-listed column
// names are ever interpolated into query text.
func (f FieldMap) OrderBy(p ListParams) string {
	column, ok := f.Sortable[p.SortBy]
	if !ok {
		column = f.Sortable[f.DefaultSort]
	}

	order := strings.ToUpper(p.SortOrder)
	if order != SortAsc && order != SortDesc {
		order = f.DefaultOrder
	}

	return column + " " + order
}

// SearchColumn resolves the column a substring search applies to, falling back
// to the resource default for unknown searchBy values.
func (f FieldMap) SearchColumn(p ListParams) string {
	column, ok := f.Searchable[p.SearchBy]
	if !ok {
		column = f.Searchable[f.DefaultSearch]
	}
	return column
}

// LikePattern builds the bound operand for a case-insensitive substring match.
func LikePattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}

type Pagination struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	Total       int  `json:"total"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

func NewPagination(page, pageSize, total int) Pagination {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		Total:       total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
