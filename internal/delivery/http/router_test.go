package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"devevent/internal/delivery/http/controllers"
	"devevent/internal/domain"
)

type stubEvents struct{ domain.EventService }

func (stubEvents) ListEvents(context.Context) ([]*domain.Event, error) { return []*domain.Event{}, nil }

func (stubEvents) GetSimilarEventsBySlug(context.Context, string) []*domain.Event {
	return []*domain.Event{}
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func TestNewRouter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(RouterConfig{
		Logger:             logger,
		Events:             controllers.NewEventController(logger, stubEvents{}, nil, 0),
		Bookings:           controllers.NewBookingController(logger, nil),
		Health:             controllers.NewHealthController(logger, okPinger{}),
		CORSAllowedOrigins: []string{"https://devevent.app"},
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"list events", http.MethodGet, "/api/events", http.StatusOK},
		{"similar events", http.MethodGet, "/api/events/gophercon/similar", http.StatusOK},
		{"health", http.MethodGet, "/healthz", http.StatusOK},
		{"wrong method", http.MethodDelete, "/api/events", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", "https://devevent.app")
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "https://devevent.app", rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
