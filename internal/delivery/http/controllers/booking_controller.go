package controllers

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// CreateBookingRequest is the request body for POST /api/bookings.
type CreateBookingRequest struct {
	EventID string `json:"event_id"`
	Slug    string `json:"slug"`
	Email   string `json:"email"`
}

// Validate implements validation.Validatable. Format checks run in the booking service.
func (b CreateBookingRequest) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.EventID, validation.Required.Error("event_id is required")),
		validation.Field(&b.Email, validation.Required.Error("email is required")),
	)
}

// CreateBookingResponse is the data of a successful booking.
type CreateBookingResponse struct {
	Success bool            `json:"success"`
	Booking *domain.Booking `json:"booking"`
}

// CreateBookingSuccessResponse is the success response envelope for POST /api/bookings (201).
type CreateBookingSuccessResponse struct {
	Data  CreateBookingResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBooking godoc
// @Summary Book a spot at an event
// @Description Registers an email for an event. The email is trimmed and lowercased; the event must exist.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Booking data"
// @Success 201 {object} controllers.CreateBookingSuccessResponse "data.success is true"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event does not exist)"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBooking(r.Context(), domain.BookingInput{
		EventID: req.EventID,
		Slug:    req.Slug,
		Email:   req.Email,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "Booking Failed")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateBookingResponse{Success: true, Booking: booking})
}
