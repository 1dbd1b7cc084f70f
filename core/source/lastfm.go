package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"SongSense/logger"
	"SongSense/model"
)

// LastFMSource enriches an already-resolved (title, artist) pair with
// genre and release year. Requires an API key; without one the adapter
// is a configured-off no-op. Never blocking: enrichment failures leave
// the resolution unchanged.
type LastFMSource struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewLastFMSource creates the enrichment adapter.
func NewLastFMSource(baseURL, apiKey string) *LastFMSource {
	return &LastFMSource{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name identifies the source in logs and merge diagnostics.
func (s *LastFMSource) Name() string {
	return "last.fm"
}

// lastFMTrackInfo is the subset of the track.getInfo response we read.
type lastFMTrackInfo struct {
	Track struct {
		Name   string `json:"name"`
		Artist struct {
			Name string `json:"name"`
		} `json:"artist"`
		Album struct {
			Title string `json:"title"`
		} `json:"album"`
		TopTags struct {
			Tag []struct {
				Name string `json:"name"`
			} `json:"tag"`
		} `json:"toptags"`
		Wiki struct {
			Published string `json:"published"`
		} `json:"wiki"`
	} `json:"track"`
}

// Attempt looks up genre (first top tag) and release year (from the
// album wiki publish date) for the given title/artist. Absent
// immediately when no API key is configured.
func (s *LastFMSource) Attempt(ctx context.Context, q SourceQuery) *model.PartialSongInfo {
	if s.apiKey == "" {
		logger.Warn("[last.fm] LASTFM_API_KEY not configured, skipping enrichment")
		return nil
	}
	if q.Title == "" || q.Artist == "" {
		return nil
	}

	params := url.Values{}
	params.Set("method", "track.getInfo")
	params.Set("api_key", s.apiKey)
	params.Set("artist", q.Artist)
	params.Set("track", q.Title)
	params.Set("format", "json")
	endpoint := s.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logger.Warn("[last.fm] failed to create request", logger.ErrorField(err))
		return nil
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Warn("[last.fm] request failed",
			logger.String("artist", q.Artist),
			logger.String("title", q.Title),
			logger.ErrorField(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("[last.fm] non-OK response", logger.Int("status", resp.StatusCode))
		return nil
	}

	var result lastFMTrackInfo
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Warn("[last.fm] failed to decode response", logger.ErrorField(err))
		return nil
	}

	genre := ""
	if len(result.Track.TopTags.Tag) > 0 {
		genre = result.Track.TopTags.Tag[0].Name
	}
	year := parseYear(result.Track.Wiki.Published)

	if genre == "" && year == 0 {
		logger.Debug("[last.fm] no enrichment data for track",
			logger.String("artist", q.Artist),
			logger.String("title", q.Title))
		return nil
	}

	logger.Info("[last.fm] enrichment retrieved",
		logger.String("artist", q.Artist),
		logger.String("title", q.Title),
		logger.String("genre", genre),
		logger.Int("year", year))

	return &model.PartialSongInfo{
		Title:  q.Title,
		Artist: q.Artist,
		Genre:  genre,
		Year:   year,
	}
}
