package model

// ParsedQuery is the best-guess split of a free-text search query.
// Artist is empty when no heuristic matched; Title always carries at
// least the trimmed raw input. Never mutated after creation.
type ParsedQuery struct {
	Artist string `json:"artist,omitempty"`
	Title  string `json:"title"`
}

// HasArtist reports whether the parser identified an artist.
func (q ParsedQuery) HasArtist() bool {
	return q.Artist != ""
}

// PartialSongInfo is one source's view of a song. Any field may be
// empty; a source returns nil rather than a struct with nothing in it.
type PartialSongInfo struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Genre  string `json:"genre,omitempty"`
	Year   int    `json:"year,omitempty"`
	Lyrics string `json:"lyrics,omitempty"`
}

// ResolvedSong is the merged view after all sources have been
// consulted. Title and Artist are always populated; per field the value
// is the first non-empty one seen in source priority order.
type ResolvedSong struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Genre  string `json:"genre,omitempty"`
	Year   int    `json:"year,omitempty"`
	Lyrics string `json:"lyrics,omitempty"`
}

// HasLyrics reports whether actual lyric text was obtained.
func (s *ResolvedSong) HasLyrics() bool {
	return s.Lyrics != ""
}
