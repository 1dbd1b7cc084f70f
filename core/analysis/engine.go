package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"SongSense/logger"
	"SongSense/model"
)

// Kind distinguishes the two analysis variants. Callers must only run
// metadata extraction over KindMetadataOnly output.
type Kind int

const (
	// KindLyricsGrounded is structured analysis computed from actual
	// lyric text.
	KindLyricsGrounded Kind = iota
	// KindMetadataOnly is free-text analysis computed from title,
	// artist and whatever metadata resolution produced, with embedded
	// Genre/Release Year lines the caller extracts.
	KindMetadataOnly
)

// Analysis is the engine's output: the variant that ran plus its
// display text (already joined for the lyrics-grounded variant, raw
// model output for the metadata-only variant).
type Analysis struct {
	Kind Kind
	Text string
}

// AnalysisError wraps a failed model call. Unlike source failures it
// is surfaced to the caller: without analysis text there is nothing to
// persist, so the search must fail visibly rather than degrade.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis generation failed: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Documented defaults for missing or malformed fields in the
// lyrics-grounded model response.
const (
	defaultMeaning        = "Unable to analyze the meaning of this song."
	defaultMood           = "Unknown"
	defaultInterpretation = "No additional interpretation available."
)

const lyricsSystemPrompt = `You are a music analyst. Given a song's title, artist and full lyrics, respond with a JSON object containing exactly these keys:
"meaning": a paragraph explaining what the song is about,
"themes": a list of the key themes as short strings,
"mood": one or two words describing the overall mood,
"interpretation": a paragraph of deeper interpretation.
Respond with the JSON object only, no other text.`

const metadataSystemPrompt = `You are a music analyst. Given a song's title, artist and any known metadata, write an interpretive analysis with these sections:
## Overview
## Core Theme
## Emotional Tone
## Cultural Context
Base the analysis on what is known about the song and artist. End your response with exactly two lines:
Genre: <the song's genre>
Release Year: <the four digit release year>`

// Per-variant completion token limits.
const (
	lyricsMaxTokens   = 800
	metadataMaxTokens = 400
)

// placeholderSentinels are lyric blobs that are stand-ins rather than
// lyric text; a song carrying one is analyzed as if it had no lyrics.
var placeholderSentinels = []string{
	"lyrics not found",
	"lyrics not available",
	"instrumental",
}

// hasActualLyrics reports whether the resolved song carries real lyric
// text rather than a not-found placeholder.
func hasActualLyrics(song *model.ResolvedSong) bool {
	lyrics := strings.ToLower(strings.TrimSpace(song.Lyrics))
	if lyrics == "" {
		return false
	}
	for _, sentinel := range placeholderSentinels {
		if lyrics == sentinel {
			return false
		}
	}
	return true
}

// Engine produces AI analyses, dispatching on lyric availability.
type Engine struct {
	client *Client
}

// NewEngine creates an analysis engine around a model client.
func NewEngine(client *Client) *Engine {
	return &Engine{client: client}
}

// Analyze runs the variant appropriate for the resolved song. A failed
// model call returns *AnalysisError; there is no degraded fallback.
func (e *Engine) Analyze(ctx context.Context, song *model.ResolvedSong) (*Analysis, error) {
	if hasActualLyrics(song) {
		return e.analyzeLyrics(ctx, song)
	}
	return e.analyzeMetadata(ctx, song)
}

// lyricsAnalysisResult is the JSON object the lyrics-grounded variant
// asks the model for.
type lyricsAnalysisResult struct {
	Meaning        string   `json:"meaning"`
	Themes         []string `json:"themes"`
	Mood           string   `json:"mood"`
	Interpretation string   `json:"interpretation"`
}

// applyDefaults fills any missing field with its documented default.
func (r *lyricsAnalysisResult) applyDefaults() {
	if r.Meaning == "" {
		r.Meaning = defaultMeaning
	}
	if r.Themes == nil {
		r.Themes = []string{}
	}
	if r.Mood == "" {
		r.Mood = defaultMood
	}
	if r.Interpretation == "" {
		r.Interpretation = defaultInterpretation
	}
}

// parseLyricsAnalysis decodes the model's JSON reply. Malformed JSON
// degrades to all defaults; the caller never sees a model formatting
// problem as a request failure.
func parseLyricsAnalysis(raw string) lyricsAnalysisResult {
	var result lyricsAnalysisResult

	cleaned := strings.TrimSpace(raw)
	// Some models wrap JSON in a markdown fence despite instructions.
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		logger.Warn("Failed to parse lyrics analysis JSON, using defaults",
			logger.ErrorField(err))
		result = lyricsAnalysisResult{}
	}

	result.applyDefaults()
	return result
}

// formatLyricsAnalysis joins the four fields into one display string:
// meaning, blank line, themes and mood lines, blank line,
// interpretation.
func formatLyricsAnalysis(r lyricsAnalysisResult) string {
	var b strings.Builder
	b.WriteString(r.Meaning)
	b.WriteString("\n\n")
	b.WriteString("Key themes: ")
	b.WriteString(strings.Join(r.Themes, ", "))
	b.WriteString("\n")
	b.WriteString("Mood: ")
	b.WriteString(r.Mood)
	b.WriteString("\n\n")
	b.WriteString(r.Interpretation)
	return b.String()
}

func (e *Engine) analyzeLyrics(ctx context.Context, song *model.ResolvedSong) (*Analysis, error) {
	user := fmt.Sprintf("Title: %s\nArtist: %s\n\nLyrics:\n%s", song.Title, song.Artist, song.Lyrics)

	raw, err := e.client.Chat(ctx, lyricsSystemPrompt, user, lyricsMaxTokens, true)
	if err != nil {
		logger.Error("Lyrics-grounded analysis call failed",
			logger.String("title", song.Title),
			logger.String("artist", song.Artist),
			logger.ErrorField(err))
		return nil, &AnalysisError{Err: err}
	}

	result := parseLyricsAnalysis(raw)
	return &Analysis{
		Kind: KindLyricsGrounded,
		Text: formatLyricsAnalysis(result),
	}, nil
}

func (e *Engine) analyzeMetadata(ctx context.Context, song *model.ResolvedSong) (*Analysis, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\nArtist: %s\n", song.Title, song.Artist)
	if song.Genre != "" {
		fmt.Fprintf(&b, "Genre: %s\n", song.Genre)
	}
	if song.Year != 0 {
		fmt.Fprintf(&b, "Release Year: %d\n", song.Year)
	}

	raw, err := e.client.Chat(ctx, metadataSystemPrompt, b.String(), metadataMaxTokens, false)
	if err != nil {
		logger.Error("Metadata-only analysis call failed",
			logger.String("title", song.Title),
			logger.String("artist", song.Artist),
			logger.ErrorField(err))
		return nil, &AnalysisError{Err: err}
	}

	return &Analysis{
		Kind: KindMetadataOnly,
		Text: raw,
	}, nil
}
