package repository

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildTourFilter(t *testing.T) {
	t.Run("no status filter matches everything", func(t *testing.T) {
		filter := buildTourFilter(TourQuery{})
		if len(filter) != 0 {
			t.Errorf("expected empty filter, got %v", filter)
		}
	})

	t.Run("active filter", func(t *testing.T) {
		active := true
		filter := buildTourFilter(TourQuery{IsActive: &active})
		if filter["isActive"] != true {
			t.Errorf("expected isActive=true filter, got %v", filter)
		}
	})

	t.Run("inactive filter", func(t *testing.T) {
		inactive := false
		filter := buildTourFilter(TourQuery{IsActive: &inactive})
		if filter["isActive"] != false {
			t.Errorf("expected isActive=false filter, got %v", filter)
		}
	})
}

func TestTourSortSpec(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		wantField string
		wantOrder int
	}{
		{"ascending", "price", "asc", "price", 1},
		{"descending", "price", "desc", "price", -1},
		{"default order is descending", "title", "", "title", -1},
		{"anything but asc is descending", "displayOrder", "up", "displayOrder", -1},
		{"unknown field falls back to createdAt", "bogus", "asc", "createdAt", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := sortSpec(tt.sortBy, tt.sortOrder)
			want := bson.D{{Key: tt.wantField, Value: tt.wantOrder}}
			if len(spec) != 1 || spec[0].Key != want[0].Key || spec[0].Value != want[0].Value {
				t.Errorf("expected %v, got %v", want, spec)
			}
		})
	}
}
