package query

import (
	"regexp"
	"strings"

	"SongSense/model"
)

// Ordered heuristics for splitting a free-text query into artist and
// title. The order matters: a query containing both " - " and "by"
// must resolve via the dash rule.
var (
	byPattern    = regexp.MustCompile(`(?i)^(.+?)\s+by\s+(.+)$`)
	parenPattern = regexp.MustCompile(`^(.*?)\s*\(([^()]+)\)\s*$`)
)

// Parse turns a raw search string into a best-guess (artist, title)
// pair. It never fails; when no heuristic matches the whole trimmed
// input becomes the title and the artist stays empty.
func Parse(raw string) model.ParsedQuery {
	trimmed := strings.TrimSpace(raw)

	// "Artist - Title", split on the first separator only so that
	// "Sia - Chandelier - Live" keeps "Chandelier - Live" as the title.
	if strings.Contains(trimmed, " - ") {
		parts := strings.SplitN(trimmed, " - ", 2)
		return model.ParsedQuery{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(parts[1]),
		}
	}

	// "Artist: Title"
	if strings.Contains(trimmed, ": ") {
		parts := strings.SplitN(trimmed, ": ", 2)
		return model.ParsedQuery{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(parts[1]),
		}
	}

	// "Title by Artist"
	if m := byPattern.FindStringSubmatch(trimmed); m != nil {
		return model.ParsedQuery{
			Artist: strings.TrimSpace(m[2]),
			Title:  strings.TrimSpace(m[1]),
		}
	}

	// "Title (Artist)"
	if m := parenPattern.FindStringSubmatch(trimmed); m != nil {
		title := strings.TrimSpace(m[1])
		if title != "" {
			return model.ParsedQuery{
				Artist: strings.TrimSpace(m[2]),
				Title:  title,
			}
		}
	}

	return model.ParsedQuery{Title: trimmed}
}
