package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"SongSense/logger"
	"SongSense/repository"

	"github.com/gorilla/mux"
)

// AddFavoriteRequest represents the add-favorite request body.
type AddFavoriteRequest struct {
	AnalysisID int64 `json:"analysisId"`
}

// AddFavoriteHandler bookmarks an analysis for the current user.
func (h *APIHandler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AnalysisID == 0 {
		respondError(w, http.StatusBadRequest, "analysisId is required")
		return
	}

	record, err := h.analysisRepo.GetAnalysisByID(req.AnalysisID)
	if err != nil {
		logger.Error("[AddFavorite] failed to query analysis", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if record == nil {
		respondError(w, http.StatusNotFound, "Analysis not found")
		return
	}

	favorite, err := h.favoriteRepo.AddFavorite(userID, req.AnalysisID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			respondError(w, http.StatusConflict, "Already in favorites")
			return
		}
		logger.Error("[AddFavorite] failed to create favorite", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("[AddFavorite] favorite added",
		logger.Int64("userId", userID),
		logger.Int64("analysisId", req.AnalysisID))

	respondJSON(w, http.StatusCreated, favorite)
}

// RemoveFavoriteHandler removes a favorite. The underlying analysis
// record is never deleted.
func (h *APIHandler) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	analysisID, err := strconv.ParseInt(vars["analysisId"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid analysis ID")
		return
	}

	if err := h.favoriteRepo.RemoveFavorite(userID, analysisID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Favorite not found")
			return
		}
		logger.Error("[RemoveFavorite] failed to delete favorite", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// GetFavoritesHandler lists the current user's favorites with their
// analysis records.
func (h *APIHandler) GetFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	favorites, err := h.favoriteRepo.GetByUserID(userID)
	if err != nil {
		logger.Error("[GetFavorites] failed to query favorites", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ids := make([]int64, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.SongAnalysisID)
	}
	analyses, err := h.analysisRepo.GetAnalysesByIDs(ids)
	if err != nil {
		logger.Error("[GetFavorites] failed to query analyses", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": favorites,
		"analyses":  analyses,
	})
}
