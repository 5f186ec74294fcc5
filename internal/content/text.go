package content

import (
	"math"
	"strings"
)

// WordsPerMinute is the reading speed used for read-time estimates.
const WordsPerMinute = 200

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadTime estimates minutes to read an article, never less than one.
func ReadTime(title, summary, body string) int {
	words := WordCount(title) + WordCount(summary) + WordCount(body)
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// DedupeTags trims tags, drops empties and removes case-insensitive
// duplicates while keeping the first spelling and the original order.
func DedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
