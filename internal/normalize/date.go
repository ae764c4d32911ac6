package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"devevent/internal/domain"
)

// DateLayout is the canonical stored date form.
const DateLayout = "2006-01-02"

// Date parses a loosely formatted calendar date ("October 24, 2025", "2025-10-24",
// "10/24/2025", RFC 3339 timestamps...) and returns it as YYYY-MM-DD.
// Inputs without a zone are read as UTC and the calendar day is taken in UTC,
// so the result never shifts with the host time zone.
func Date(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", domain.ErrInvalidDate
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDate, input)
	}
	t = t.UTC()
	// The parser leaves the year at zero when the input has none ("Oct 24").
	if t.Year() == 0 {
		return "", fmt.Errorf("%w: %q has no year", domain.ErrInvalidDate, input)
	}
	return t.Format(DateLayout), nil
}
