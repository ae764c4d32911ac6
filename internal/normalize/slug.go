// Package normalize turns loosely formatted event fields into their canonical stored form.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"devevent/internal/domain"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title to a URL-safe slug: lowercase ASCII letters and digits
// separated by single hyphens. Accented letters are folded to their base letter
// ("Café" -> "cafe") and compatibility forms to plain letters ("ﬁ" -> "fi").
// It returns domain.ErrSlugGeneration when nothing alphanumeric remains.
//
//	Slugify("Next.js Conf!!") // "next-js-conf"
func Slugify(title string) (string, error) {
	stripMarks := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, strings.TrimSpace(title))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSlugGeneration, err)
	}
	// Lowercase after folding: some compatibility forms decompose to capitals.
	folded = strings.ToLower(folded)

	slug := strings.Trim(nonSlugChars.ReplaceAllString(folded, "-"), "-")
	if slug == "" {
		return "", domain.ErrSlugGeneration
	}
	return slug, nil
}
