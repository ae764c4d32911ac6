package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
	"devevent/internal/normalize"
)

// DefaultMaxUploadBytes bounds the multipart body of POST /api/events when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// CreateEventForm holds the scalar fields of the POST /api/events multipart form.
type CreateEventForm struct {
	Title       string
	Description string
	Overview    string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Organizer   string
	Agenda      []string
	Tags        []string
}

// Validate implements validation.Validatable. Presence only; normalization rules run in the service.
func (f CreateEventForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required.Error("title is required")),
		validation.Field(&f.Date, validation.Required.Error("date is required")),
		validation.Field(&f.Time, validation.Required.Error("time is required")),
		validation.Field(&f.Agenda, validation.Required.Error("agenda must contain at least one item")),
		validation.Field(&f.Tags, validation.Required.Error("tags must contain at least one item")),
	)
}

func parseCreateEventForm(r *http.Request) CreateEventForm {
	return CreateEventForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Overview:    r.FormValue("overview"),
		Venue:       r.FormValue("venue"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Mode:        r.FormValue("mode"),
		Audience:    r.FormValue("audience"),
		Organizer:   r.FormValue("organizer"),
		Agenda:      normalize.ParseList(r.FormValue("agenda")),
		Tags:        normalize.ParseList(r.FormValue("tags")),
	}
}

// UpdateEventRequest is the request body for PATCH /api/events/{slug}. All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Overview    *string  `json:"overview"`
	Image       *string  `json:"image"`
	Venue       *string  `json:"venue"`
	Location    *string  `json:"location"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Mode        *string  `json:"mode"`
	Audience    *string  `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   *string  `json:"organizer"`
	Tags        []string `json:"tags"`
}

// Validate implements validation.Validatable. Provided fields must not be empty.
func (u UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Title, validation.NilOrNotEmpty),
		validation.Field(&u.Description, validation.NilOrNotEmpty),
		validation.Field(&u.Overview, validation.NilOrNotEmpty),
		validation.Field(&u.Image, validation.NilOrNotEmpty),
		validation.Field(&u.Venue, validation.NilOrNotEmpty),
		validation.Field(&u.Location, validation.NilOrNotEmpty),
		validation.Field(&u.Date, validation.NilOrNotEmpty),
		validation.Field(&u.Time, validation.NilOrNotEmpty),
		validation.Field(&u.Mode, validation.NilOrNotEmpty),
		validation.Field(&u.Audience, validation.NilOrNotEmpty),
		validation.Field(&u.Organizer, validation.NilOrNotEmpty),
	)
}

func (u UpdateEventRequest) patch() domain.EventPatch {
	return domain.EventPatch{
		Title:       u.Title,
		Description: u.Description,
		Overview:    u.Overview,
		Image:       u.Image,
		Venue:       u.Venue,
		Location:    u.Location,
		Date:        u.Date,
		Time:        u.Time,
		Mode:        u.Mode,
		Audience:    u.Audience,
		Agenda:      u.Agenda,
		Organizer:   u.Organizer,
		Tags:        u.Tags,
	}
}

// EventSuccessResponse is the success response envelope for a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for event lists.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventDetailsSuccessResponse is the success response envelope for GET /api/events/{slug}.
type EventDetailsSuccessResponse struct {
	Data  *domain.EventDetails `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type EventController struct {
	Logger         *slog.Logger
	Service        domain.EventService
	Uploader       domain.ImageUploader
	MaxUploadBytes int64
}

func NewEventController(logger *slog.Logger, svc domain.EventService, uploader domain.ImageUploader, maxUploadBytes int64) *EventController {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &EventController{
		Logger:         logger,
		Service:        svc,
		Uploader:       uploader,
		MaxUploadBytes: maxUploadBytes,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Multipart form. agenda and tags accept a JSON array of strings or a comma-separated list. The image file is stored on the asset host and its URL saved on the event.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param overview formData string true "Overview"
// @Param venue formData string true "Venue"
// @Param location formData string true "Location"
// @Param date formData string true "Date, any common format"
// @Param time formData string true "Time, 24-hour or 12-hour with AM/PM"
// @Param mode formData string true "Mode (online, offline, hybrid)"
// @Param audience formData string true "Audience"
// @Param organizer formData string true "Organizer"
// @Param agenda formData string true "Agenda items"
// @Param tags formData string true "Tags"
// @Param image formData file true "Event image"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 502 {object} helpers.APIResponse "error.code: upload_failed"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > c.MaxUploadBytes {
		helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodeBadRequest, "request body too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, c.MaxUploadBytes)
	if err := r.ParseMultipartForm(c.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodeBadRequest, "request body too large")
			return
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	form := parseCreateEventForm(r)
	if !helpers.Validate(w, form) {
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "No image file found.")
		return
	}
	defer file.Close()

	input := domain.EventInput{
		Title:       form.Title,
		Description: form.Description,
		Overview:    form.Overview,
		Venue:       form.Venue,
		Location:    form.Location,
		Date:        form.Date,
		Time:        form.Time,
		Mode:        form.Mode,
		Audience:    form.Audience,
		Agenda:      form.Agenda,
		Organizer:   form.Organizer,
		Tags:        form.Tags,
	}
	// Reject bad input before anything is stored on the image host.
	if err := c.Service.ValidateEvent(r.Context(), input); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "Event Creation Failed")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not read image file")
		return
	}
	input.Image, err = c.Uploader.Upload(r.Context(), header.Filename, data)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "Event Creation Failed")
		return
	}

	event, err := c.Service.CreateEvent(r.Context(), input)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "Event Creation Failed")
		return
	}
	c.Logger.InfoContext(r.Context(), "event created", "id", event.ID, "slug", event.Slug)
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events
// @Description Returns every event, most recently created first.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the events"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "Event Fetching Failed")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get event details
// @Description Resolves a slug to its event, similar events sharing a tag, and the number of bookings.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventDetailsSuccessResponse "data contains event, similar_events and bookings"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{slug} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	details, err := c.Service.GetEventDetails(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err, "Event Fetching Failed")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partial update. Changing the title regenerates the slug; date and time are normalized again only when changed.
// @Tags events
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{slug} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), r.PathValue("slug"), req.patch())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err, "Event Update Failed")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// GetSimilarEvents godoc
// @Summary List similar events
// @Description Events sharing at least one tag with the given event. Always 200; unknown slugs and lookup failures yield an empty list.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the similar events"
// @Router /api/events/{slug}/similar [get]
func (c *EventController) GetSimilarEvents(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.GetSimilarEventsBySlug(r.Context(), r.PathValue("slug")))
}
