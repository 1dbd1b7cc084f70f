package model

import "time"

// Favorite bookmarks an analysis for a user. One favorite per
// (user, analysis) pair; duplicates are rejected, not deduplicated.
// Deleting a favorite never deletes the underlying analysis.
type Favorite struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID         int64     `json:"userId" gorm:"not null;uniqueIndex:uq_user_analysis"`
	SongAnalysisID int64     `json:"songAnalysisId" gorm:"not null;uniqueIndex:uq_user_analysis"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TableName overrides the GORM default.
func (Favorite) TableName() string {
	return "favorites"
}
