// Package mentions holds the single tokenization rule shared by mention
// resolution and rendering: a mention is a run of word characters
// immediately following '@'.
package mentions

import (
	"regexp"
	"strings"
)

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// Extract returns the usernames mentioned in text, lowercased and
// deduplicated, preserving first-occurrence order. The leading '@' is
// stripped. Tokens that don't resolve to a real user are the caller's
// problem; extraction is purely lexical.
func Extract(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	usernames := make([]string, 0, len(matches))
	for _, m := range matches {
		username := strings.ToLower(m[1])
		if seen[username] {
			continue
		}
		seen[username] = true
		usernames = append(usernames, username)
	}
	return usernames
}

// Split partitions text into alternating plain and mention segments, using
// the same pattern as Extract so what gets highlighted is exactly what gets
// resolved. Mention segments keep their '@' prefix.
func Split(text string) []Segment {
	var segments []Segment
	last := 0
	for _, loc := range mentionPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: text[last:loc[0]]})
		}
		segments = append(segments, Segment{Text: text[loc[0]:loc[1]], Mention: true})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// Segment is a slice of text that is either plain or a mention token.
type Segment struct {
	Text    string `json:"text"`
	Mention bool   `json:"mention"`
}
