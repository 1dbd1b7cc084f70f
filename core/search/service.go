package search

import (
	"context"
	"errors"
	"fmt"

	"SongSense/core/analysis"
	"SongSense/logger"
	"SongSense/model"
	"SongSense/repository"

	"github.com/google/uuid"
)

// ErrPersistenceFailed marks a failure to save the computed analysis
// or its history entry. Not retried; the caller is told the analysis
// was computed but could not be saved.
var ErrPersistenceFailed = errors.New("failed to persist analysis")

// SongResolver resolves a raw query into the merged song view.
type SongResolver interface {
	Resolve(ctx context.Context, raw string) (*model.ResolvedSong, error)
}

// Analyzer produces an AI analysis for a resolved song.
type Analyzer interface {
	Analyze(ctx context.Context, song *model.ResolvedSong) (*analysis.Analysis, error)
}

// Service runs the whole search pipeline: resolve, analyze, extract,
// persist. One analysis record and one history entry per successful
// search, in that order.
type Service struct {
	resolver     SongResolver
	analyzer     Analyzer
	analysisRepo repository.AnalysisRepository
	historyRepo  repository.HistoryRepository
}

// NewService wires the pipeline.
func NewService(resolver SongResolver, analyzer Analyzer, analysisRepo repository.AnalysisRepository, historyRepo repository.HistoryRepository) *Service {
	return &Service{
		resolver:     resolver,
		analyzer:     analyzer,
		analysisRepo: analysisRepo,
		historyRepo:  historyRepo,
	}
}

// Search performs the full pipeline for one query and returns the
// stored analysis record. Source-level failures degrade inside the
// resolver; analysis and persistence failures surface.
func (s *Service) Search(ctx context.Context, userID int64, rawQuery string) (*model.SongAnalysis, error) {
	requestID := uuid.NewString()

	logger.Info("Search started",
		logger.String("requestId", requestID),
		logger.Int64("userId", userID),
		logger.String("query", rawQuery))

	song, err := s.resolver.Resolve(ctx, rawQuery)
	if err != nil {
		return nil, err
	}

	logger.Info("Song resolved",
		logger.String("requestId", requestID),
		logger.String("title", song.Title),
		logger.String("artist", song.Artist),
		logger.Bool("hasLyrics", song.HasLyrics()))

	result, err := s.analyzer.Analyze(ctx, song)
	if err != nil {
		return nil, err
	}

	record := &model.SongAnalysis{
		UserID:         userID,
		Title:          song.Title,
		Artist:         song.Artist,
		Genre:          song.Genre,
		YearReleased:   song.Year,
		LyricsAnalysis: result.Text,
	}

	// Only the metadata-only variant embeds Genre/Release Year tokens;
	// for that path the model's stated metadata overrides what the
	// resolver determined.
	if result.Kind == analysis.KindMetadataOnly {
		genre, year, cleaned := analysis.ExtractMetadata(result.Text)
		record.LyricsAnalysis = cleaned
		if genre != "" {
			record.Genre = genre
		}
		if year != 0 {
			record.YearReleased = year
		}
	}

	id, err := s.analysisRepo.CreateAnalysis(record)
	if err != nil {
		logger.Error("Failed to save analysis record",
			logger.String("requestId", requestID),
			logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	record.ID = id

	// History strictly after the committed analysis id. A history
	// failure here leaves a saved analysis without a history row; that
	// partial state is reported, not repaired.
	entry := &model.SearchHistory{
		UserID:         userID,
		SearchQuery:    rawQuery,
		SongAnalysisID: id,
	}
	if err := s.historyRepo.CreateEntry(entry); err != nil {
		logger.Error("Failed to save history entry for analysis",
			logger.String("requestId", requestID),
			logger.Int64("analysisId", id),
			logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	logger.Info("Search completed",
		logger.String("requestId", requestID),
		logger.Int64("analysisId", id))

	return record, nil
}
