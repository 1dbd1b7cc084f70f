package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"SongSense/core/query"
	"SongSense/logger"
	"SongSense/model"
)

// LrclibSource is the secondary lyrics fallback, backed by the LRCLIB
// search API. Consulted only when the primary provider comes up empty.
type LrclibSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewLrclibSource creates the fallback lyrics adapter.
func NewLrclibSource(baseURL string) *LrclibSource {
	return &LrclibSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name identifies the source in logs and merge diagnostics.
func (s *LrclibSource) Name() string {
	return "lrclib"
}

// lrclibResult is one hit from the LRCLIB search endpoint.
type lrclibResult struct {
	ID           int     `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// Attempt searches LRCLIB for plain lyrics. Absent on parse failure,
// request failure or when no hit carries lyric text.
func (s *LrclibSource) Attempt(ctx context.Context, q SourceQuery) *model.PartialSongInfo {
	parsed := query.Parse(q.Raw)
	if !parsed.HasArtist() || parsed.Title == "" {
		logger.Debug("[lrclib] query did not yield an artist/title pair, skipping",
			logger.String("query", q.Raw))
		return nil
	}

	params := url.Values{}
	params.Set("track_name", parsed.Title)
	params.Set("artist_name", parsed.Artist)
	endpoint := s.baseURL + "/api/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logger.Warn("[lrclib] failed to create request", logger.ErrorField(err))
		return nil
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Warn("[lrclib] request failed",
			logger.String("artist", parsed.Artist),
			logger.String("title", parsed.Title),
			logger.ErrorField(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("[lrclib] non-OK response",
			logger.Int("status", resp.StatusCode))
		return nil
	}

	var results []lrclibResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		logger.Warn("[lrclib] failed to decode response", logger.ErrorField(err))
		return nil
	}

	for _, hit := range results {
		lyrics := strings.TrimSpace(hit.PlainLyrics)
		if hit.Instrumental || lyrics == "" {
			continue
		}

		logger.Info("[lrclib] lyrics retrieved",
			logger.String("artist", hit.ArtistName),
			logger.String("title", hit.TrackName),
			logger.Int("length", len(lyrics)))

		info := &model.PartialSongInfo{
			Title:  hit.TrackName,
			Artist: hit.ArtistName,
			Lyrics: lyrics,
		}
		if info.Title == "" {
			info.Title = parsed.Title
		}
		if info.Artist == "" {
			info.Artist = parsed.Artist
		}
		return info
	}

	logger.Debug("[lrclib] no usable hit",
		logger.String("artist", parsed.Artist),
		logger.String("title", parsed.Title),
		logger.Int("hits", len(results)))
	return nil
}
