package httputil

import (
	"net/http/httptest"
	"testing"
)

func TestExtractListParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  ListParams
	}{
		{
			name:  "defaults",
			query: "",
			want:  ListParams{Page: 1, Limit: 50, SortBy: "createdAt", SortOrder: "desc"},
		},
		{
			name:  "explicit values",
			query: "?page=3&limit=10&sortBy=name&sortOrder=asc&status=pending&search=smith",
			want:  ListParams{Page: 3, Limit: 10, SortBy: "name", SortOrder: "asc", Status: "pending", Search: "smith"},
		},
		{
			name:  "invalid numbers fall back",
			query: "?page=abc&limit=-5",
			want:  ListParams{Page: 1, Limit: 50, SortBy: "createdAt", SortOrder: "desc"},
		},
		{
			name:  "unknown sortOrder means descending",
			query: "?sortOrder=upwards",
			want:  ListParams{Page: 1, Limit: 50, SortBy: "createdAt", SortOrder: "desc"},
		},
		{
			name:  "search is trimmed",
			query: "?search=%20%20jo%20%20",
			want:  ListParams{Page: 1, Limit: 50, SortBy: "createdAt", SortOrder: "desc", Search: "jo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/bookings"+tt.query, nil)
			got := ExtractListParams(r)
			if got != tt.want {
				t.Errorf("ExtractListParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	p := ListParams{Page: 3, Limit: 10}
	if got := p.Skip(); got != 20 {
		t.Errorf("Skip() = %d, want 20", got)
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		limit     int
		wantPages int
	}{
		{"exact multiple", 100, 50, 2},
		{"partial last page", 101, 50, 3},
		{"empty", 0, 50, 0},
		{"single record", 1, 50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(1, tt.limit, tt.total)
			if p.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", p.Pages, tt.wantPages)
			}
		})
	}
}
