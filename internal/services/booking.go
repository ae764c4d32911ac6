package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"devevent/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type bookingService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewBookingService returns the BookingService. emailService may be nil to skip
// confirmation emails.
func NewBookingService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bookingService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// normalizeEmail trims and lowercases email after checking it looks like local@domain.tld.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !emailPattern.MatchString(email) {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, in domain.BookingInput) (*domain.Booking, error) {
	if s.contextTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.contextTimeout)
		defer cancel()
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	rawID := strings.TrimSpace(in.EventID)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("event id %q: %w", rawID, domain.ErrDanglingReference)
	}
	// Lookups use the canonical form; the store rejects urn and brace forms.
	eventID := id.String()
	// Existence check and insert are not atomic; an event removed in between
	// leaves an orphan booking.
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("event id %q: %w", eventID, domain.ErrDanglingReference)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	now := s.now().UTC()
	booking := domain.NewBooking(event.ID, email, now, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.sendConfirmation(ctx, event, booking)
	return booking, nil
}

func (s *bookingService) sendConfirmation(ctx context.Context, event *domain.Event, booking *domain.Booking) {
	if s.emailService == nil {
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		EventTitle: event.Title,
		EventSlug:  event.Slug,
		Date:       event.Date,
		Time:       event.Time,
		Venue:      event.Venue,
		Location:   event.Location,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "booking confirmation email failed",
			"booking_id", booking.ID, "event_id", event.ID, "error", err)
	}
}

func (s *bookingService) CountBookings(ctx context.Context, eventID string) (int, error) {
	if s.contextTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.contextTimeout)
		defer cancel()
	}
	n, err := s.bookingRepo.CountByEventID(ctx, strings.TrimSpace(eventID))
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}
