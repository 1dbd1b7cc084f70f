package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"SongSense/logger"
	"SongSense/model"
)

// MusicBrainzSource canonicalizes a (title, artist) pair against the
// public MusicBrainz catalog. Unlike the other adapters it never
// returns absent: on any failure or empty result it echoes the input
// identity with no year/genre, so the resolver can merge it
// unconditionally as the lowest-priority source.
type MusicBrainzSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewMusicBrainzSource creates the canonical metadata adapter.
func NewMusicBrainzSource(baseURL string) *MusicBrainzSource {
	return &MusicBrainzSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name identifies the source in logs and merge diagnostics.
func (s *MusicBrainzSource) Name() string {
	return "musicbrainz"
}

// mbRecordingSearch is the subset of the recording search response we read.
type mbRecordingSearch struct {
	Recordings []struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		Score        int    `json:"score"`
		ArtistCredit []struct {
			Name string `json:"name"`
		} `json:"artist-credit"`
		FirstReleaseDate string `json:"first-release-date"`
		Tags             []struct {
			Name string `json:"name"`
		} `json:"tags"`
	} `json:"recordings"`
}

// Attempt searches for a best-matching recording and returns canonical
// title/artist/year/genre, or the unchanged input when nothing matched.
func (s *MusicBrainzSource) Attempt(ctx context.Context, q SourceQuery) *model.PartialSongInfo {
	echo := &model.PartialSongInfo{Title: q.Title, Artist: q.Artist}
	if q.Title == "" {
		return echo
	}

	// Lucene query per the MusicBrainz search syntax.
	lucene := fmt.Sprintf("recording:%q", q.Title)
	if q.Artist != "" {
		lucene = fmt.Sprintf("recording:%q AND artist:%q", q.Title, q.Artist)
	}
	endpoint := fmt.Sprintf("%s/recording?query=%s&fmt=json&limit=5",
		s.baseURL, url.QueryEscape(lucene))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logger.Warn("[musicbrainz] failed to create request", logger.ErrorField(err))
		return echo
	}
	// MusicBrainz requires a descriptive User-Agent.
	req.Header.Set("User-Agent", "SongSense/1.0 (song analysis service)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Warn("[musicbrainz] request failed",
			logger.String("title", q.Title),
			logger.String("artist", q.Artist),
			logger.ErrorField(err))
		return echo
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("[musicbrainz] non-OK response", logger.Int("status", resp.StatusCode))
		return echo
	}

	var result mbRecordingSearch
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Warn("[musicbrainz] failed to decode response", logger.ErrorField(err))
		return echo
	}

	if len(result.Recordings) == 0 {
		logger.Debug("[musicbrainz] no matching recordings",
			logger.String("title", q.Title),
			logger.String("artist", q.Artist))
		return echo
	}

	rec := result.Recordings[0]
	info := &model.PartialSongInfo{
		Title:  rec.Title,
		Artist: q.Artist,
		Year:   parseYear(rec.FirstReleaseDate),
	}
	if len(rec.ArtistCredit) > 0 && rec.ArtistCredit[0].Name != "" {
		info.Artist = rec.ArtistCredit[0].Name
	}
	if len(rec.Tags) > 0 {
		info.Genre = rec.Tags[0].Name
	}
	if info.Title == "" {
		info.Title = q.Title
	}

	logger.Info("[musicbrainz] canonical recording found",
		logger.String("title", info.Title),
		logger.String("artist", info.Artist),
		logger.Int("year", info.Year),
		logger.Int("score", rec.Score))

	return info
}
