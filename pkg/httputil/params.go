package httputil

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"

	defaultLimit  = 50
	defaultSortBy = "createdAt"
)

// ListParams carries the pagination, sorting and optional filters of a list
// request. Handlers build one per call; nothing is kept between requests.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Status    string
	Search    string
}

// ExtractListParams reads the list query parameters, falling back to
// page=1, limit=50, sortBy=createdAt. Any sortOrder other than "asc"
// (including absence) sorts descending.
func ExtractListParams(r *http.Request) ListParams {
	query := r.URL.Query()

	page := 1
	if v, err := strconv.Atoi(query.Get("page")); err == nil && v > 0 {
		page = v
	}

	limit := defaultLimit
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		limit = v
	}

	sortBy := query.Get("sortBy")
	if sortBy == "" {
		sortBy = defaultSortBy
	}

	sortOrder := SortDesc
	if query.Get("sortOrder") == SortAsc {
		sortOrder = SortAsc
	}

	return ListParams{
		Page:      page,
		Limit:     limit,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Status:    query.Get("status"),
		Search:    strings.TrimSpace(query.Get("search")),
	}
}

// Skip is the number of records preceding the requested page.
func (p ListParams) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}
