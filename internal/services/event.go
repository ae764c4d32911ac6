package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"devevent/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	cache          domain.EventCache
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService returns the EventService. cache may be nil, in which case
// detail lookups always hit the repository.
func NewEventService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	cache domain.EventCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	if cache == nil {
		cache = nopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		cache:          cache,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}

// pendingImage stands in for an image that has not been uploaded yet.
const pendingImage = "pending-upload"

// ValidateEvent normalizes a copy of in and checks that its slug is free, so
// callers can reject input before side effects such as uploading the image.
func (s *eventService) ValidateEvent(ctx context.Context, in domain.EventInput) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event := domain.NewEvent(in)
	if strings.TrimSpace(event.Image) == "" {
		event.Image = pendingImage
	}
	if err := normalizeEvent(event, nil); err != nil {
		return err
	}

	_, err := s.eventRepo.GetBySlug(ctx, event.Slug)
	switch {
	case err == nil:
		return fmt.Errorf("slug %q: %w", event.Slug, domain.ErrDuplicateSlug)
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("check slug: %w", err)
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event := domain.NewEvent(in)
	if err := normalizeEvent(event, nil); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, slug string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	prev, err := s.eventRepo.GetBySlug(ctx, cleanSlug(slug))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	next := *prev
	applyPatch(&next, patch)
	if err := normalizeEvent(&next, prev); err != nil {
		return nil, err
	}
	next.UpdatedAt = s.now().UTC()

	if err := s.eventRepo.Update(ctx, &next); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	if err := s.cache.Delete(ctx, prev.Slug, next.Slug); err != nil {
		s.logger.WarnContext(ctx, "event cache invalidation failed", "slug", prev.Slug, "error", err)
	}
	return &next, nil
}

func applyPatch(e *domain.Event, p domain.EventPatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&e.Title, p.Title)
	set(&e.Description, p.Description)
	set(&e.Overview, p.Overview)
	set(&e.Image, p.Image)
	set(&e.Venue, p.Venue)
	set(&e.Location, p.Location)
	set(&e.Date, p.Date)
	set(&e.Time, p.Time)
	set(&e.Mode, p.Mode)
	set(&e.Audience, p.Audience)
	set(&e.Organizer, p.Organizer)
	if p.Agenda != nil {
		e.Agenda = p.Agenda
	}
	if p.Tags != nil {
		e.Tags = p.Tags
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.getBySlug(ctx, cleanSlug(slug))
}

func (s *eventService) getBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if slug == "" {
		return nil, domain.ErrNotFound
	}

	cached, ok, err := s.cache.Get(ctx, slug)
	if err != nil {
		s.logger.WarnContext(ctx, "event cache read failed", "slug", slug, "error", err)
	}
	if ok {
		return cached, nil
	}

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if err := s.cache.Set(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "event cache write failed", "slug", slug, "error", err)
	}
	return event, nil
}

// GetSimilarEventsBySlug returns other events sharing at least one tag with the
// event at slug. Lookup failures are logged and yield an empty slice.
func (s *eventService) GetSimilarEventsBySlug(ctx context.Context, slug string) []*domain.Event {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.getBySlug(ctx, cleanSlug(slug))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.WarnContext(ctx, "similar events lookup failed", "slug", slug, "error", err)
		}
		return []*domain.Event{}
	}
	return s.similarTo(ctx, event)
}

func (s *eventService) similarTo(ctx context.Context, event *domain.Event) []*domain.Event {
	similar, err := s.eventRepo.ListSharingTags(ctx, event.ID, event.Tags)
	if err != nil {
		s.logger.WarnContext(ctx, "similar events lookup failed", "slug", event.Slug, "error", err)
		return []*domain.Event{}
	}
	if similar == nil {
		similar = []*domain.Event{}
	}
	return similar
}

func (s *eventService) GetEventDetails(ctx context.Context, slug string) (*domain.EventDetails, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.getBySlug(ctx, cleanSlug(slug))
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.CountByEventID(ctx, event.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "booking count failed", "event_id", event.ID, "error", err)
		bookings = 0
	}

	return &domain.EventDetails{
		Event:         event,
		SimilarEvents: s.similarTo(ctx, event),
		Bookings:      bookings,
	}, nil
}

func cleanSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) (*domain.Event, bool, error) { return nil, false, nil }
func (nopCache) Set(context.Context, *domain.Event) error                 { return nil }
func (nopCache) Delete(context.Context, ...string) error                  { return nil }
