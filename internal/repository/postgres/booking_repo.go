package postgres

import (
	"context"

	"devevent/internal/domain"
)

type bookingRepository struct {
	db Provider
}

// NewBookingRepository returns a domain.BookingRepository implemented with Postgres.
func NewBookingRepository(db Provider) domain.BookingRepository {
	return &bookingRepository{
		db: db,
	}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	db, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO bookings (event_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return db.QueryRowContext(ctx, query, b.EventID, b.Email, b.CreatedAt, b.UpdatedAt).
		Scan(&b.ID)
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	db, err := r.db.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, eventID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
