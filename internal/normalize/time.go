package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"devevent/internal/domain"
)

var (
	// 0-23 hours, 00-59 minutes, optional seconds which are dropped.
	clock24 = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)(?::[0-5]\d)?$`)
	clock12 = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2])(?::([0-5]\d))?\s*(am|pm)$`)
	// Anything ending in a meridiem marker is 12-hour and must match clock12.
	meridiem = regexp.MustCompile(`(?i)\d\s*(am|pm)$`)
	// Only clock-shaped strings reach the generic parser; it would otherwise read
	// stray digits as seconds and return midnight.
	clockLike = regexp.MustCompile(`^\d{1,2}:\d{2}(?::\d{2}(?:\.\d+)?)?\s*(?:Z|[+-]\d{2}:?\d{2})?$`)
)

// fallbackDate anchors bare clock strings for the generic parser.
const fallbackDate = "1970-01-01T"

// Time normalizes a time of day to 24-hour HH:MM.
//
// Rules, first match wins:
//   - 24-hour "H:MM" or "HH:MM" with optional ":SS" is zero-padded as is, so an
//     ambiguous "9:00" means 09:00, never 9 PM.
//   - 12-hour "H", "H:MM" followed by am/pm in any case ("9 AM", "12:00 am").
//   - any other clock-shaped string the generic date parser accepts ("09:30:15.250").
func Time(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", domain.ErrInvalidTime
	}

	if m := clock24.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return formatClock(hour, m[2]), nil
	}

	if m := clock12.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minutes := m[2]
		if minutes == "" {
			minutes = "00"
		}
		switch strings.ToLower(m[3]) {
		case "pm":
			if hour != 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		return formatClock(hour, minutes), nil
	}
	if meridiem.MatchString(s) || !clockLike.MatchString(s) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidTime, input)
	}

	t, err := dateparse.ParseIn(fallbackDate+s, time.UTC)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidTime, input)
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()), nil
}

func formatClock(hour int, minutes string) string {
	return fmt.Sprintf("%02d:%s", hour, minutes)
}
