package model

import "time"

// SongAnalysis is the stored result of one search: the reconciled song
// identity plus the AI analysis text. Records are immutable after
// creation; a repeat search of the same song creates a new record.
type SongAnalysis struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	Title          string    `json:"title"`
	Artist         string    `json:"artist"`
	Genre          string    `json:"genre,omitempty"`
	YearReleased   int       `json:"yearReleased,omitempty"`
	LyricsAnalysis string    `json:"lyricsAnalysis"`
	CreatedAt      time.Time `json:"createdAt"`
}
