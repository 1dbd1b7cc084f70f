package resolver

import (
	"context"
	"errors"
	"strings"
	"sync"

	"SongSense/cache"
	"SongSense/core/query"
	"SongSense/core/source"
	"SongSense/logger"
	"SongSense/model"
)

// ErrSongNotFound is returned when not even a minimal title can be
// established from the raw query (empty or whitespace input).
var ErrSongNotFound = errors.New("song not found")

// UnknownArtist is the artist placeholder when the query parser could
// not identify one and no source supplied one.
const UnknownArtist = "Unknown Artist"

// Resolver orchestrates the song data sources in priority order and
// merges their partial outputs into one ResolvedSong.
type Resolver struct {
	lyricsSources []source.Source // consulted in order, first hit wins
	enrichment    source.Source
	canonical     source.Source
}

// New creates a resolver. lyricsSources are tried in the given order;
// enrichment runs against a lyrics hit; canonical always runs last.
func New(lyricsSources []source.Source, enrichment, canonical source.Source) *Resolver {
	return &Resolver{
		lyricsSources: lyricsSources,
		enrichment:    enrichment,
		canonical:     canonical,
	}
}

// merge combines two partial views field by field. The base value wins
// whenever it is set; next only fills fields the base left empty. The
// resolved record therefore never blends two sources for one field.
func merge(base, next *model.PartialSongInfo) *model.PartialSongInfo {
	if base == nil && next == nil {
		return nil
	}
	if base == nil {
		out := *next
		return &out
	}
	out := *base
	if next == nil {
		return &out
	}
	if out.Title == "" {
		out.Title = next.Title
	}
	if out.Artist == "" {
		out.Artist = next.Artist
	}
	if out.Genre == "" {
		out.Genre = next.Genre
	}
	if out.Year == 0 {
		out.Year = next.Year
	}
	if out.Lyrics == "" {
		out.Lyrics = next.Lyrics
	}
	return &out
}

// Resolve turns a raw query into the best-available merged view of a
// song. It fails only when the query is empty; every other degradation
// is soft and produces at least a title and artist.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*model.ResolvedSong, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrSongNotFound
	}

	parsed := query.Parse(trimmed)

	if cached := cache.GetResolvedSong(ctx, parsed.Artist, parsed.Title); cached != nil {
		logger.Debug("Resolved song served from cache",
			logger.String("title", cached.Title),
			logger.String("artist", cached.Artist))
		return cached, nil
	}

	// Lyrics sources in priority order; first hit wins.
	var base *model.PartialSongInfo
	fromLyrics := false
	for _, src := range r.lyricsSources {
		if info := src.Attempt(ctx, source.SourceQuery{Raw: trimmed}); info != nil {
			logger.Info("Lyrics source yielded data",
				logger.String("source", src.Name()),
				logger.String("title", info.Title),
				logger.String("artist", info.Artist))
			base = info
			fromLyrics = true
			break
		}
	}

	// No lyrics source produced anything: degrade to the parsed query
	// alone, no network call.
	if base == nil {
		artist := parsed.Artist
		if artist == "" {
			artist = UnknownArtist
		}
		base = &model.PartialSongInfo{
			Title:  parsed.Title,
			Artist: artist,
		}
		logger.Info("No lyrics source yielded data, falling back to parsed query",
			logger.String("title", base.Title),
			logger.String("artist", base.Artist))
	}

	// Enrichment (lyrics paths only) and canonical lookup address
	// different services and share no ordering dependency, so issue
	// them concurrently; the merge below stays strictly ordered.
	key := source.SourceQuery{Title: base.Title, Artist: base.Artist}
	var enriched, canonical *model.PartialSongInfo
	var wg sync.WaitGroup
	if fromLyrics && r.enrichment != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			enriched = r.enrichment.Attempt(ctx, key)
		}()
	}
	if r.canonical != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			canonical = r.canonical.Attempt(ctx, key)
		}()
	}
	wg.Wait()

	// Priority order: lyrics result, then enrichment, then canonical.
	// Canonical data never overrides a field an earlier source set.
	merged := merge(base, enriched)
	merged = merge(merged, canonical)

	if merged.Title == "" {
		merged.Title = parsed.Title
	}
	if merged.Artist == "" {
		if parsed.Artist != "" {
			merged.Artist = parsed.Artist
		} else {
			merged.Artist = UnknownArtist
		}
	}

	resolved := &model.ResolvedSong{
		Title:  merged.Title,
		Artist: merged.Artist,
		Genre:  merged.Genre,
		Year:   merged.Year,
		Lyrics: merged.Lyrics,
	}

	cache.SetResolvedSong(ctx, parsed.Artist, parsed.Title, resolved)

	return resolved, nil
}
