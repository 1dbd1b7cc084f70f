package model

import "time"

// SearchHistory links a user's raw search query to the analysis record
// it produced. Deleting history never deletes the analysis.
type SearchHistory struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID         int64     `json:"userId" gorm:"index;not null"`
	SearchQuery    string    `json:"searchQuery" gorm:"type:varchar(512);not null"`
	SongAnalysisID int64     `json:"songAnalysisId" gorm:"not null"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TableName overrides the GORM default.
func (SearchHistory) TableName() string {
	return "search_histories"
}
