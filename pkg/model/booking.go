package model

import "time"

// Booking status lifecycle. New bookings always start out pending.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// BookingStatuses lists the accepted status values in lifecycle order.
var BookingStatuses = []string{StatusPending, StatusConfirmed, StatusCancelled}

// Booking is a customer's request to reserve a tour. TourID is a loose
// reference: it may be empty or point at a tour that no longer exists.
type Booking struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone       string    `json:"phone" bson:"phone" validate:"required,phone"`
	Email       string    `json:"email" bson:"email" validate:"required,email"`
	Adults      int       `json:"adults" bson:"adults" validate:"required,min=1,max=20"`
	Children    int       `json:"children" bson:"children" validate:"min=0,max=20"`
	TravelDate  time.Time `json:"travelDate" bson:"travelDate" validate:"required"`
	ConfirmTrip string    `json:"confirmTrip" bson:"confirmTrip" validate:"required"`
	TourID      string    `json:"tourId,omitempty" bson:"tourId,omitempty"`
	Message     string    `json:"message,omitempty" bson:"message,omitempty" validate:"omitempty,max=1000"`
	Status      string    `json:"status" bson:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt" validate:"omitempty"`
}

// BookingConfirmation is the minimal projection returned to the public form
// after a successful submission.
type BookingConfirmation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidStatus reports whether s is one of the accepted booking statuses.
func ValidStatus(s string) bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}
