package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"SongSense/core/analysis"
	"SongSense/core/resolver"
	"SongSense/core/search"
	"SongSense/logger"

	"github.com/gorilla/mux"
)

// SearchRequest represents the search request body.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchHandler runs the full analysis pipeline for a query and
// returns the stored analysis record.
func (h *APIHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.searchService.Search(r.Context(), userID, req.Query)
	if err != nil {
		var analysisErr *analysis.AnalysisError
		switch {
		case errors.Is(err, resolver.ErrSongNotFound):
			respondError(w, http.StatusNotFound, "Song not found")
		case errors.As(err, &analysisErr):
			logger.Error("[Search] analysis generation failed",
				logger.Int64("userId", userID),
				logger.String("query", req.Query),
				logger.ErrorField(err))
			respondError(w, http.StatusBadGateway, "Failed to generate analysis")
		case errors.Is(err, search.ErrPersistenceFailed):
			respondError(w, http.StatusInternalServerError, "Analysis was computed but could not be saved")
		default:
			logger.Error("[Search] unexpected failure", logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// GetAnalysisHandler returns one stored analysis record.
func (h *APIHandler) GetAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	analysisID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid analysis ID")
		return
	}

	record, err := h.analysisRepo.GetAnalysisByID(analysisID)
	if err != nil {
		logger.Error("[GetAnalysis] failed to query analysis", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if record == nil {
		respondError(w, http.StatusNotFound, "Analysis not found")
		return
	}

	isFavorite, err := h.favoriteRepo.IsFavorite(userID, analysisID)
	if err != nil {
		logger.Warn("[GetAnalysis] failed to check favorite state", logger.ErrorField(err))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"analysis":   record,
		"isFavorite": isFavorite,
	})
}
