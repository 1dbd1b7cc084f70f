package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

// Patterns for the metadata lines the metadata-only variant embeds in
// its free-text output. Matching is fragile by nature (the model
// controls the formatting), hence the deliberately loose whitespace
// handling.
var (
	genreLinePattern = regexp.MustCompile(`(?i)^\s*Genre:\s*(.*)$`)
	yearLinePattern  = regexp.MustCompile(`(?i)^\s*Release Year:\s*.*$`)
	yearValuePattern = regexp.MustCompile(`(?i)Release Year:\D*(\d{4})`)
)

// ExtractMetadata pulls Genre/Release Year tokens out of free-text
// analysis output and strips their lines from the display text. genre
// is empty and year zero when the corresponding token is absent.
// Applies only to metadata-only analysis output; the lyrics-grounded
// variant's text never contains these tokens.
func ExtractMetadata(text string) (genre string, year int, cleaned string) {
	if m := yearValuePattern.FindStringSubmatch(text); m != nil {
		if parsed, err := strconv.Atoi(m[1]); err == nil {
			year = parsed
		}
	}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if m := genreLinePattern.FindStringSubmatch(line); m != nil {
			if genre == "" {
				genre = strings.TrimSpace(m[1])
			}
			continue
		}
		if yearLinePattern.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}

	cleaned = strings.TrimSpace(strings.Join(kept, "\n"))
	return genre, year, cleaned
}
