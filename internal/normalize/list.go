package normalize

import (
	"encoding/json"
	"strings"
)

// ParseList reads a list form field that is either a JSON array of strings
// (`["a","b"]`) or a comma-separated string ("a, b"). Items are trimmed and
// empty items dropped on both paths.
func ParseList(raw string) []string {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		items = strings.Split(raw, ",")
	}
	return compact(items)
}

// List trims every item and drops blanks, keeping order.
func List(items []string) []string {
	return compact(items)
}

// Tags trims, lowercases and de-duplicates tags, keeping first occurrences in order.
func Tags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range compact(tags) {
		tag = strings.ToLower(tag)
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
