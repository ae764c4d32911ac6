package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/middleware"
)

// RouterConfig holds the controllers and settings the router is built from.
type RouterConfig struct {
	Logger             *slog.Logger
	Events             *controllers.EventController
	Bookings           *controllers.BookingController
	Health             *controllers.HealthController
	CORSAllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes and wraps
// it in the recovery, logging and CORS middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /api/events", cfg.Events.CreateEvent)
	mux.HandleFunc("GET /api/events", cfg.Events.ListEvents)
	mux.HandleFunc("GET /api/events/{slug}", cfg.Events.GetEvent)
	mux.HandleFunc("PATCH /api/events/{slug}", cfg.Events.UpdateEvent)
	mux.HandleFunc("GET /api/events/{slug}/similar", cfg.Events.GetSimilarEvents)

	// Bookings
	mux.HandleFunc("POST /api/bookings", cfg.Bookings.CreateBooking)

	mux.HandleFunc("GET /healthz", cfg.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.Recover(cfg.Logger, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	return handler
}
