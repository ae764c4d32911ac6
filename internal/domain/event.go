package domain

import (
	"context"
	"time"
)

// Event is a published event listing.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM, 24-hour
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventInput carries the raw, not yet normalized fields of a new event.
type EventInput struct {
	Title       string
	Description string
	Overview    string
	Image       string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Agenda      []string
	Organizer   string
	Tags        []string
}

// NewEvent builds an Event from input. Slug, ID and timestamps are filled in later.
func NewEvent(in EventInput) *Event {
	return &Event{
		Title:       in.Title,
		Description: in.Description,
		Overview:    in.Overview,
		Image:       in.Image,
		Venue:       in.Venue,
		Location:    in.Location,
		Date:        in.Date,
		Time:        in.Time,
		Mode:        in.Mode,
		Audience:    in.Audience,
		Agenda:      in.Agenda,
		Organizer:   in.Organizer,
		Tags:        in.Tags,
	}
}

// EventPatch holds optional field updates. Nil fields are left unchanged.
type EventPatch struct {
	Title       *string
	Description *string
	Overview    *string
	Image       *string
	Venue       *string
	Location    *string
	Date        *string
	Time        *string
	Mode        *string
	Audience    *string
	Agenda      []string
	Organizer   *string
	Tags        []string
}

// EventDetails is the detail view of one event.
type EventDetails struct {
	Event         *Event   `json:"event"`
	SimilarEvents []*Event `json:"similar_events"`
	Bookings      int      `json:"bookings"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	// ListSharingTags returns events having at least one of tags, excluding excludeID.
	ListSharingTags(ctx context.Context, excludeID string, tags []string) ([]*Event, error)
}

// EventCache caches event detail lookups by slug.
type EventCache interface {
	Get(ctx context.Context, slug string) (*Event, bool, error)
	Set(ctx context.Context, event *Event) error
	Delete(ctx context.Context, slugs ...string) error
}

// ImageUploader stores an event image on an external asset host and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// EventService defines the business logic for publishing and reading events.
type EventService interface {
	// ValidateEvent runs the create checks without writing; in.Image may be blank.
	ValidateEvent(ctx context.Context, in EventInput) error
	CreateEvent(ctx context.Context, in EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, slug string, patch EventPatch) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	GetEventDetails(ctx context.Context, slug string) (*EventDetails, error)
	// GetSimilarEventsBySlug never fails; it returns an empty slice on any error.
	GetSimilarEventsBySlug(ctx context.Context, slug string) []*Event
}
