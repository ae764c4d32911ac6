package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"devevent/internal/domain"
)

const uniqueViolation = "23505"

const eventColumns = `id, title, slug, description, overview, image, venue, location, event_date, event_time,
		mode, audience, agenda, organizer, tags, created_at, updated_at`

type eventRepository struct {
	db Provider
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db Provider) domain.EventRepository {
	return &eventRepository{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Slug, &e.Description, &e.Overview, &e.Image, &e.Venue, &e.Location,
		&e.Date, &e.Time, &e.Mode, &e.Audience, pq.Array(&e.Agenda), &e.Organizer, pq.Array(&e.Tags),
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func mapWriteError(err error) error {
	var perr *pq.Error
	if errors.As(err, &perr) && perr.Code == uniqueViolation {
		return domain.ErrDuplicateSlug
	}
	return err
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	db, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO events (title, slug, description, overview, image, venue, location, event_date, event_time,
			mode, audience, agenda, organizer, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err = db.QueryRowContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location, e.Date, e.Time,
		e.Mode, e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	return mapWriteError(err)
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	db, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE events SET title = $1, slug = $2, description = $3, overview = $4, image = $5, venue = $6,
			location = $7, event_date = $8, event_time = $9, mode = $10, audience = $11, agenda = $12,
			organizer = $13, tags = $14, updated_at = $15
		WHERE id = $16
	`
	result, err := db.ExecContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location, e.Date, e.Time,
		e.Mode, e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags), e.UpdatedAt, e.ID,
	)
	if err != nil {
		return mapWriteError(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return r.getOne(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	return r.getOne(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug)
}

func (r *eventRepository) getOne(ctx context.Context, query string, arg string) (*domain.Event, error) {
	db, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	e, err := scanEvent(db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
}

func (r *eventRepository) ListSharingTags(ctx context.Context, excludeID string, tags []string) ([]*domain.Event, error) {
	if len(tags) == 0 {
		return []*domain.Event{}, nil
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE id <> $1 AND tags && $2 ORDER BY created_at DESC`
	return r.list(ctx, query, excludeID, pq.Array(tags))
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	db, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
