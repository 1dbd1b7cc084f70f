package server

import (
	"errors"
	"net/http"
	"strconv"

	"SongSense/logger"
	"SongSense/repository"

	"github.com/gorilla/mux"
)

// GetHistoryHandler lists the current user's search history, newest
// first.
func (h *APIHandler) GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.historyRepo.GetByUserID(userID, limit)
	if err != nil {
		logger.Error("[GetHistory] failed to query history", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"history": entries,
	})
}

// DeleteHistoryHandler removes one history entry. The referenced
// analysis record is never deleted.
func (h *APIHandler) DeleteHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid history entry ID")
		return
	}

	if err := h.historyRepo.DeleteEntry(userID, entryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "History entry not found")
			return
		}
		logger.Error("[DeleteHistory] failed to delete history entry", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
