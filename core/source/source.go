package source

import (
	"context"
	"regexp"

	"SongSense/model"
)

// SourceQuery carries the inputs an adapter may need. The lyrics
// adapters work from the raw user query; the enrichment and canonical
// adapters are keyed on an already-known (title, artist) pair.
type SourceQuery struct {
	Raw    string
	Title  string
	Artist string
}

// Source is an optional song data source. Attempt returns nil when the
// source has nothing: network errors, missing credentials and empty
// results are all absorbed and logged, never surfaced to the caller.
type Source interface {
	Name() string
	Attempt(ctx context.Context, q SourceQuery) *model.PartialSongInfo
}

// yearPattern matches the first 4-digit year run in a date-ish string.
var yearPattern = regexp.MustCompile(`\d{4}`)

// parseYear extracts a 4-digit year from a free-form date string.
// Returns 0 when none is present.
func parseYear(s string) int {
	m := yearPattern.FindString(s)
	if m == "" {
		return 0
	}
	year := 0
	for _, c := range m {
		year = year*10 + int(c-'0')
	}
	return year
}
