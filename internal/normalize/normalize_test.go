package normalize

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevent/internal/domain"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		want    string
		wantErr bool
	}{
		{"punctuation collapses", "Next.js Conf!!", "next-js-conf", false},
		{"trims and lowercases", "  React Summit 2025 ", "react-summit-2025", false},
		{"folds accents", "Café Über Día", "cafe-uber-dia", false},
		{"folds ligatures", "ﬁnance ﬂow", "finance-flow", false},
		{"full-width letters", "ＧｏＣｏｎ", "gocon", false},
		{"apostrophe", "AI Engineering World's Fair", "ai-engineering-world-s-fair", false},
		{"leading and trailing symbols", "--[DevOps]--Days--", "devops-days", false},
		{"no alphanumerics", "!!! ??? ---", "", true},
		{"blank", "   ", "", true},
		{"non-latin only", "東京", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Slugify(tt.title)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, domain.ErrSlugGeneration))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSlugify_Shape(t *testing.T) {
	titles := []string{
		"Web3 Builders Hackathon",
		"TypeScript   Congress -- 2025",
		"  ¡Fiesta! São Paulo / Brasil ",
		"a",
		"x_y_z",
		"100% Uptime: SRE Day",
	}
	for _, title := range titles {
		got, err := Slugify(title)
		require.NoError(t, err, title)
		assert.Regexp(t, slugShape, got, title)
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"long month name", "October 24, 2025", "2025-10-24", false},
		{"already canonical", "2025-10-24", "2025-10-24", false},
		{"us slashes", "10/24/2025", "2025-10-24", false},
		{"padded", "  2025-06-13 ", "2025-06-13", false},
		{"rfc3339 is taken in utc", "2025-10-24T23:30:00-05:00", "2025-10-25", false},
		{"garbage", "not a date", "", true},
		{"missing year", "Oct 24", "", true},
		{"blank", " ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Date(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, domain.ErrInvalidDate))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDate_Idempotent(t *testing.T) {
	for _, input := range []string{"October 24, 2025", "2025-01-02", "12/31/2024", "2024-02-29T10:00:00Z"} {
		once, err := Date(input)
		require.NoError(t, err, input)
		twice, err := Date(once)
		require.NoError(t, err, once)
		require.Equal(t, once, twice)
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare hour am", "9 AM", "09:00", false},
		{"midnight", "12:00 AM", "00:00", false},
		{"noon", "12:00 PM", "12:00", false},
		{"pm with minutes", "9:30 pm", "21:30", false},
		{"no space", "11:15PM", "23:15", false},
		{"leading zero 12h", "09 am", "09:00", false},
		{"24h passthrough", "21:30", "21:30", false},
		{"end of day", "23:59", "23:59", false},
		{"ambiguous is 24h", "9:00", "09:00", false},
		{"seconds dropped", "08:05:59", "08:05", false},
		{"fractional seconds via fallback", "09:30:15.250", "09:30", false},
		{"hour 13 with meridiem", "13 AM", "", true},
		{"hour 0 with meridiem", "0 PM", "", true},
		{"minutes out of range", "10:60", "", true},
		{"hour out of range", "25:00", "", true},
		{"words", "noon", "", true},
		{"bare digit", "5", "", true},
		{"dotted clock", "9.30", "", true},
		{"hour suffix", "9h", "", true},
		{"blank", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Time(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, domain.ErrInvalidTime))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["Keynote", " Workshops ", ""]`, []string{"Keynote", "Workshops"}},
		{"comma separated", "react, nextjs ,, web", []string{"react", "nextjs", "web"}},
		{"single value", "frontend", []string{"frontend"}},
		{"json of wrong shape falls back to split", `{"a":1}`, []string{`{"a":1}`}},
		{"empty", "", []string{}},
		{"empty json array", "[]", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseList(tt.raw))
		})
	}
}

func TestTags(t *testing.T) {
	got := Tags([]string{" React", "react", "NextJS", "", "  "})
	require.Equal(t, []string{"react", "nextjs"}, got)
}
