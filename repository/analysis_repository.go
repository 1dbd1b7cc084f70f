package repository

import (
	"database/sql"
	"fmt"

	"SongSense/model"
)

// AnalysisRepository defines the interface for song analysis records.
// Records are insert-only: a repeat search of the same song creates a
// new record rather than updating an existing one.
type AnalysisRepository interface {
	CreateAnalysis(analysis *model.SongAnalysis) (int64, error)
	GetAnalysisByID(id int64) (*model.SongAnalysis, error)
	GetAnalysesByIDs(ids []int64) ([]*model.SongAnalysis, error)
}

// mysqlAnalysisRepository implements AnalysisRepository for MySQL.
type mysqlAnalysisRepository struct {
	db *sql.DB
}

// NewMySQLAnalysisRepository creates a new mysqlAnalysisRepository.
func NewMySQLAnalysisRepository(db *sql.DB) AnalysisRepository {
	return &mysqlAnalysisRepository{db: db}
}

// CreateAnalysis inserts a new analysis record and returns its ID.
func (r *mysqlAnalysisRepository) CreateAnalysis(analysis *model.SongAnalysis) (int64, error) {
	query := "INSERT INTO song_analyses (user_id, title, artist, genre, year_released, lyrics_analysis) VALUES (?, ?, ?, ?, ?, ?)"
	stmt, err := r.db.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare create analysis statement: %w", err)
	}
	defer stmt.Close()

	var genre sql.NullString
	if analysis.Genre != "" {
		genre = sql.NullString{String: analysis.Genre, Valid: true}
	}
	var year sql.NullInt64
	if analysis.YearReleased != 0 {
		year = sql.NullInt64{Int64: int64(analysis.YearReleased), Valid: true}
	}

	res, err := stmt.Exec(analysis.UserID, analysis.Title, analysis.Artist, genre, year, analysis.LyricsAnalysis)
	if err != nil {
		return 0, fmt.Errorf("failed to execute create analysis statement: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for analysis: %w", err)
	}
	return id, nil
}

// GetAnalysisByID retrieves an analysis record by its ID.
func (r *mysqlAnalysisRepository) GetAnalysisByID(id int64) (*model.SongAnalysis, error) {
	query := "SELECT id, user_id, title, artist, genre, year_released, lyrics_analysis, created_at FROM song_analyses WHERE id = ?"
	row := r.db.QueryRow(query, id)
	return scanAnalysis(row)
}

// GetAnalysesByIDs retrieves multiple analysis records, preserving the
// order of ids. Missing records are skipped.
func (r *mysqlAnalysisRepository) GetAnalysesByIDs(ids []int64) ([]*model.SongAnalysis, error) {
	analyses := make([]*model.SongAnalysis, 0, len(ids))
	for _, id := range ids {
		analysis, err := r.GetAnalysisByID(id)
		if err != nil {
			return nil, err
		}
		if analysis != nil {
			analyses = append(analyses, analysis)
		}
	}
	return analyses, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row rowScanner) (*model.SongAnalysis, error) {
	analysis := &model.SongAnalysis{}
	var genre sql.NullString
	var year sql.NullInt64
	err := row.Scan(&analysis.ID, &analysis.UserID, &analysis.Title, &analysis.Artist, &genre, &year, &analysis.LyricsAnalysis, &analysis.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Analysis not found
		}
		return nil, fmt.Errorf("failed to scan analysis row: %w", err)
	}
	if genre.Valid {
		analysis.Genre = genre.String
	}
	if year.Valid {
		analysis.YearReleased = int(year.Int64)
	}
	return analysis, nil
}
