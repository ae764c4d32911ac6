package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the events and bookings tables. All statements are idempotent.
// bookings.event_id has no foreign key; the booking service checks the event exists.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title       TEXT NOT NULL,
		slug        TEXT NOT NULL,
		description TEXT NOT NULL,
		overview    TEXT NOT NULL,
		image       TEXT NOT NULL,
		venue       TEXT NOT NULL,
		location    TEXT NOT NULL,
		event_date  TEXT NOT NULL,
		event_time  TEXT NOT NULL,
		mode        TEXT NOT NULL,
		audience    TEXT NOT NULL,
		agenda      TEXT[] NOT NULL,
		organizer   TEXT NOT NULL,
		tags        TEXT[] NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS events_slug_key ON events (slug)`,
	`CREATE INDEX IF NOT EXISTS events_tags_idx ON events USING GIN (tags)`,
	`CREATE INDEX IF NOT EXISTS events_created_at_idx ON events (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		event_id   UUID NOT NULL,
		email      TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_event_id_idx ON bookings (event_id)`,
}

// EnsureSchema creates the tables and indexes used by the repositories.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
