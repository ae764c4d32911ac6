package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"devevent/internal/domain"
)

var eventColumnNames = []string{
	"id", "title", "slug", "description", "overview", "image", "venue", "location", "event_date", "event_time",
	"mode", "audience", "agenda", "organizer", "tags", "created_at", "updated_at",
}

var ts = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleEvent() *domain.Event {
	return &domain.Event{
		Title:       "Next.js Conf",
		Slug:        "next-js-conf",
		Description: "desc",
		Overview:    "overview",
		Image:       "https://cdn.example.com/a.png",
		Venue:       "Hall A",
		Location:    "San Francisco, CA",
		Date:        "2025-10-24",
		Time:        "09:00",
		Mode:        "offline",
		Audience:    "developers",
		Agenda:      []string{"Keynote", "Workshops"},
		Organizer:   "Vercel",
		Tags:        []string{"nextjs", "react"},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func addEventRow(rows *sqlmock.Rows, id, slug string, tags string) *sqlmock.Rows {
	return rows.AddRow(id, "Next.js Conf", slug, "desc", "overview", "https://cdn.example.com/a.png", "Hall A",
		"San Francisco, CA", "2025-10-24", "09:00", "offline", "developers", "{Keynote,Workshops}", "Vercel",
		tags, ts, ts)
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				e := sampleEvent()
				mock.ExpectQuery(`INSERT INTO events \(title, slug, description`).
					WithArgs(e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location, e.Date, e.Time,
						e.Mode, e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags), ts, ts).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name: "duplicate slug",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "events_slug_key"})
			},
			wantErr: domain.ErrDuplicateSlug,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(Static(db))
			e := sampleEvent()
			err = repo.Create(ctx, e)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, e.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events SET title = \$1, slug = \$2`).
					WithArgs("Next.js Conf", "next-js-conf", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
						sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
						sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), ts, "ev-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events SET`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "slug taken by another event",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events SET`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateSlug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(Static(db))
			e := sampleEvent()
			e.ID = "ev-1"
			err = repo.Update(ctx, e)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetBySlug(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		slug    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			slug: "next-js-conf",
			mock: func(mock sqlmock.Sqlmock) {
				rows := addEventRow(sqlmock.NewRows(eventColumnNames), "ev-1", "next-js-conf", "{nextjs,react}")
				mock.ExpectQuery(`SELECT id, title, slug`).
					WithArgs("next-js-conf").
					WillReturnRows(rows)
			},
			want: func() *domain.Event {
				e := sampleEvent()
				e.ID = "ev-1"
				return e
			}(),
		},
		{
			name: "not found",
			slug: "missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, slug`).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(Static(db))
			got, err := repo.GetBySlug(ctx, tt.slug)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, slug .* FROM events WHERE id = \$1`).
		WithArgs("ev-1").
		WillReturnRows(addEventRow(sqlmock.NewRows(eventColumnNames), "ev-1", "next-js-conf", "{nextjs}"))

	got, err := NewEventRepository(Static(db)).GetByID(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Equal(t, "ev-1", got.ID)
	require.Equal(t, []string{"nextjs"}, got.Tags)
	require.Equal(t, []string{"Keynote", "Workshops"}, got.Agenda)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		mock      func(mock sqlmock.Sqlmock)
		wantSlugs []string
		wantErr   bool
	}{
		{
			name: "newest first",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventColumnNames)
				addEventRow(rows, "ev-2", "second", "{a}")
				addEventRow(rows, "ev-1", "first", "{a}")
				mock.ExpectQuery(`SELECT .* FROM events ORDER BY created_at DESC`).WillReturnRows(rows)
			},
			wantSlugs: []string{"second", "first"},
		},
		{
			name: "empty",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM events ORDER BY created_at DESC`).
					WillReturnRows(sqlmock.NewRows(eventColumnNames))
			},
			wantSlugs: []string{},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .* FROM events`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewEventRepository(Static(db)).List(ctx)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			slugs := make([]string, 0, len(got))
			for _, e := range got {
				slugs = append(slugs, e.Slug)
			}
			require.Equal(t, tt.wantSlugs, slugs)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_ListSharingTags(t *testing.T) {
	ctx := context.Background()

	t.Run("overlap query excludes the source event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := addEventRow(sqlmock.NewRows(eventColumnNames), "ev-2", "react-summit", "{react}")
		mock.ExpectQuery(`WHERE id <> \$1 AND tags && \$2`).
			WithArgs("ev-1", pq.Array([]string{"react", "nextjs"})).
			WillReturnRows(rows)

		got, err := NewEventRepository(Static(db)).ListSharingTags(ctx, "ev-1", []string{"react", "nextjs"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "react-summit", got[0].Slug)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no tags skips the query", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		got, err := NewEventRepository(Static(db)).ListSharingTags(ctx, "ev-1", nil)
		require.NoError(t, err)
		require.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
