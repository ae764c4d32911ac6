package services

import (
	"fmt"
	"slices"
	"strings"

	"devevent/internal/domain"
	"devevent/internal/normalize"
)

// normalizeEvent validates e and rewrites its derived fields in place.
// prev is the stored version of the event on update, or nil on create; fields
// that did not change since prev are not normalized again.
func normalizeEvent(e, prev *domain.Event) error {
	required := []struct {
		name  string
		value *string
	}{
		{"title", &e.Title},
		{"description", &e.Description},
		{"overview", &e.Overview},
		{"image", &e.Image},
		{"venue", &e.Venue},
		{"location", &e.Location},
		{"date", &e.Date},
		{"time", &e.Time},
		{"mode", &e.Mode},
		{"audience", &e.Audience},
		{"organizer", &e.Organizer},
	}
	for _, f := range required {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return fmt.Errorf("%s %w", f.name, domain.ErrRequiredField)
		}
	}

	if prev == nil || e.Title != prev.Title || e.Slug == "" {
		slug, err := normalize.Slugify(e.Title)
		if err != nil {
			return err
		}
		e.Slug = slug
	}

	if prev == nil || e.Date != prev.Date {
		date, err := normalize.Date(e.Date)
		if err != nil {
			return err
		}
		e.Date = date
	}

	if prev == nil || e.Time != prev.Time {
		t, err := normalize.Time(e.Time)
		if err != nil {
			return err
		}
		e.Time = t
	}

	if prev == nil || !slices.Equal(e.Agenda, prev.Agenda) {
		e.Agenda = normalize.List(e.Agenda)
	}
	if len(e.Agenda) == 0 {
		return fmt.Errorf("agenda %w", domain.ErrEmptyCollection)
	}

	if prev == nil || !slices.Equal(e.Tags, prev.Tags) {
		e.Tags = normalize.Tags(e.Tags)
	}
	if len(e.Tags) == 0 {
		return fmt.Errorf("tags %w", domain.ErrEmptyCollection)
	}
	return nil
}
