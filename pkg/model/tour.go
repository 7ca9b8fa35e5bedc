package model

import "time"

// Duration and category values accepted for a tour. Kept in the order the
// public site renders them.
var (
	TourDurations  = []string{"1 day", "2 days", "3 days", "1 week", "2 weeks"}
	TourCategories = []string{"adventure", "cultural", "luxury", "family", "romantic"}
)

// Tour is a sellable travel package listed on the public site. Title is
// unique across all tours, enforced by a unique index at the store boundary.
type Tour struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title        string    `json:"title" bson:"title" validate:"required,min=3,max=100"`
	Price        float64   `json:"price" bson:"price" validate:"min=0"`
	Duration     string    `json:"duration" bson:"duration" validate:"required,oneof='1 day' '2 days' '3 days' '1 week' '2 weeks'"`
	Category     string    `json:"category" bson:"category" validate:"required,oneof=adventure cultural luxury family romantic"`
	Description  string    `json:"description" bson:"description" validate:"required,min=10,max=2000"`
	ImageURL     string    `json:"imageUrl" bson:"imageUrl" validate:"required"`
	DisplayOrder int       `json:"displayOrder" bson:"displayOrder" validate:"min=0"`
	IsActive     bool      `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" validate:"omitempty"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt" validate:"omitempty"`
}
