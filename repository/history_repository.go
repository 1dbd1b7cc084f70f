package repository

import (
	"fmt"

	"SongSense/model"

	"gorm.io/gorm"
)

// HistoryRepository defines the interface for search history
// operations. History rows reference analysis records; deleting
// history never deletes the referenced analysis.
type HistoryRepository interface {
	CreateEntry(entry *model.SearchHistory) error
	GetByUserID(userID int64, limit int) ([]*model.SearchHistory, error)
	DeleteEntry(userID, entryID int64) error
}

// gormHistoryRepository implements HistoryRepository with GORM.
type gormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new gormHistoryRepository.
func NewGormHistoryRepository(db *gorm.DB) HistoryRepository {
	return &gormHistoryRepository{db: db}
}

// CreateEntry records a search and the analysis it produced.
func (r *gormHistoryRepository) CreateEntry(entry *model.SearchHistory) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create history entry: %w", err)
	}
	return nil
}

// GetByUserID returns a user's history, newest first.
func (r *gormHistoryRepository) GetByUserID(userID int64, limit int) ([]*model.SearchHistory, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []*model.SearchHistory
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query history for user %d: %w", userID, err)
	}
	return entries, nil
}

// DeleteEntry removes one history entry owned by the user.
func (r *gormHistoryRepository) DeleteEntry(userID, entryID int64) error {
	result := r.db.
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&model.SearchHistory{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete history entry %d: %w", entryID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
