package domain

import (
	"context"
	"time"
)

// Booking is an email signup for an event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking creates a new Booking. ID is typically set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingInput is the booking action payload.
type BookingInput struct {
	EventID string
	Slug    string
	Email   string
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// BookingService defines visitor-facing booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, in BookingInput) (*Booking, error)
	CountBookings(ctx context.Context, eventID string) (int, error)
}
