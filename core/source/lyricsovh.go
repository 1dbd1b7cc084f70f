package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"SongSense/core/query"
	"SongSense/logger"
	"SongSense/model"
)

// LyricsOvhSource is the primary lyrics provider. It re-derives the
// (artist, title) pair from the raw query and calls the lyrics.ovh
// lyrics-by-artist-and-title endpoint. Unauthenticated, best effort.
type LyricsOvhSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewLyricsOvhSource creates the primary lyrics adapter.
func NewLyricsOvhSource(baseURL string) *LyricsOvhSource {
	return &LyricsOvhSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name identifies the source in logs and merge diagnostics.
func (s *LyricsOvhSource) Name() string {
	return "lyrics.ovh"
}

// Attempt fetches lyrics for the query. Absent when the query cannot
// be split into artist and title, or when the endpoint has no match.
func (s *LyricsOvhSource) Attempt(ctx context.Context, q SourceQuery) *model.PartialSongInfo {
	parsed := query.Parse(q.Raw)
	if !parsed.HasArtist() || parsed.Title == "" {
		logger.Debug("[lyrics.ovh] query did not yield an artist/title pair, skipping",
			logger.String("query", q.Raw))
		return nil
	}

	endpoint := fmt.Sprintf("%s/v1/%s/%s",
		s.baseURL, url.PathEscape(parsed.Artist), url.PathEscape(parsed.Title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logger.Warn("[lyrics.ovh] failed to create request", logger.ErrorField(err))
		return nil
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Warn("[lyrics.ovh] request failed",
			logger.String("artist", parsed.Artist),
			logger.String("title", parsed.Title),
			logger.ErrorField(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("[lyrics.ovh] no lyrics found",
			logger.String("artist", parsed.Artist),
			logger.String("title", parsed.Title),
			logger.Int("status", resp.StatusCode))
		return nil
	}

	var result struct {
		Lyrics string `json:"lyrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Warn("[lyrics.ovh] failed to decode response", logger.ErrorField(err))
		return nil
	}

	lyrics := strings.TrimSpace(result.Lyrics)
	if lyrics == "" {
		return nil
	}

	logger.Info("[lyrics.ovh] lyrics retrieved",
		logger.String("artist", parsed.Artist),
		logger.String("title", parsed.Title),
		logger.Int("length", len(lyrics)))

	return &model.PartialSongInfo{
		Title:  parsed.Title,
		Artist: parsed.Artist,
		Lyrics: lyrics,
	}
}
