package repository

import (
	"errors"
	"fmt"
	"strings"

	"SongSense/model"

	"gorm.io/gorm"
)

// FavoriteRepository defines the interface for favorite operations.
// A favorite is unique per (user, analysis) pair; duplicates are
// rejected with ErrDuplicateFavorite. Removing a favorite never
// deletes the underlying analysis.
type FavoriteRepository interface {
	AddFavorite(userID, analysisID int64) (*model.Favorite, error)
	RemoveFavorite(userID, analysisID int64) error
	IsFavorite(userID, analysisID int64) (bool, error)
	GetByUserID(userID int64) ([]*model.Favorite, error)
}

// gormFavoriteRepository implements FavoriteRepository with GORM.
type gormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new gormFavoriteRepository.
func NewGormFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &gormFavoriteRepository{db: db}
}

// AddFavorite bookmarks an analysis for a user. The unique index on
// (user_id, song_analysis_id) backs the duplicate rejection.
func (r *gormFavoriteRepository) AddFavorite(userID, analysisID int64) (*model.Favorite, error) {
	favorite := &model.Favorite{
		UserID:         userID,
		SongAnalysisID: analysisID,
	}

	if err := r.db.Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
			return nil, ErrDuplicateFavorite
		}
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}
	return favorite, nil
}

// RemoveFavorite deletes the favorite for a (user, analysis) pair.
func (r *gormFavoriteRepository) RemoveFavorite(userID, analysisID int64) error {
	result := r.db.
		Where("user_id = ? AND song_analysis_id = ?", userID, analysisID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFavorite reports whether the user has favorited the analysis.
func (r *gormFavoriteRepository) IsFavorite(userID, analysisID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND song_analysis_id = ?", userID, analysisID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count > 0, nil
}

// GetByUserID returns a user's favorites, newest first.
func (r *gormFavoriteRepository) GetByUserID(userID int64) ([]*model.Favorite, error) {
	var favorites []*model.Favorite
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites for user %d: %w", userID, err)
	}
	return favorites, nil
}
