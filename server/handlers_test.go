package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SongSense/core/analysis"
	"SongSense/core/auth"
	"SongSense/core/resolver"
	"SongSense/core/search"
	"SongSense/model"
	"SongSense/repository"
)

type fakeResolver struct {
	song *model.ResolvedSong
	err  error
}

func (f *fakeResolver) Resolve(ctx context.Context, raw string) (*model.ResolvedSong, error) {
	return f.song, f.err
}

type fakeAnalyzer struct {
	result *analysis.Analysis
	err    error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, song *model.ResolvedSong) (*analysis.Analysis, error) {
	return f.result, f.err
}

type memAnalysisRepo struct {
	records map[int64]*model.SongAnalysis
	nextID  int64
	err     error
}

func newMemAnalysisRepo() *memAnalysisRepo {
	return &memAnalysisRepo{records: map[int64]*model.SongAnalysis{}}
}

func (m *memAnalysisRepo) CreateAnalysis(a *model.SongAnalysis) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = time.Now()
	m.records[a.ID] = a
	return a.ID, nil
}

func (m *memAnalysisRepo) GetAnalysisByID(id int64) (*model.SongAnalysis, error) {
	return m.records[id], nil
}

func (m *memAnalysisRepo) GetAnalysesByIDs(ids []int64) ([]*model.SongAnalysis, error) {
	out := make([]*model.SongAnalysis, 0, len(ids))
	for _, id := range ids {
		if a := m.records[id]; a != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

type memFavoriteRepo struct {
	favorites map[[2]int64]*model.Favorite
	nextID    int64
}

func newMemFavoriteRepo() *memFavoriteRepo {
	return &memFavoriteRepo{favorites: map[[2]int64]*model.Favorite{}}
}

func (m *memFavoriteRepo) AddFavorite(userID, analysisID int64) (*model.Favorite, error) {
	key := [2]int64{userID, analysisID}
	if _, exists := m.favorites[key]; exists {
		return nil, repository.ErrDuplicateFavorite
	}
	m.nextID++
	fav := &model.Favorite{ID: m.nextID, UserID: userID, SongAnalysisID: analysisID}
	m.favorites[key] = fav
	return fav, nil
}

func (m *memFavoriteRepo) RemoveFavorite(userID, analysisID int64) error {
	key := [2]int64{userID, analysisID}
	if _, exists := m.favorites[key]; !exists {
		return repository.ErrNotFound
	}
	delete(m.favorites, key)
	return nil
}

func (m *memFavoriteRepo) IsFavorite(userID, analysisID int64) (bool, error) {
	_, exists := m.favorites[[2]int64{userID, analysisID}]
	return exists, nil
}

func (m *memFavoriteRepo) GetByUserID(userID int64) ([]*model.Favorite, error) {
	var out []*model.Favorite
	for _, f := range m.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

type memHistoryRepo struct {
	entries []*model.SearchHistory
}

func (m *memHistoryRepo) CreateEntry(entry *model.SearchHistory) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memHistoryRepo) GetByUserID(userID int64, limit int) ([]*model.SearchHistory, error) {
	return m.entries, nil
}

func (m *memHistoryRepo) DeleteEntry(userID, entryID int64) error {
	for i, e := range m.entries {
		if e.ID == entryID && e.UserID == userID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func authedRequest(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	return r.WithContext(ctx)
}

func newTestHandler(res search.SongResolver, an search.Analyzer) (*APIHandler, *memAnalysisRepo, *memFavoriteRepo, *memHistoryRepo) {
	analysisRepo := newMemAnalysisRepo()
	favoriteRepo := newMemFavoriteRepo()
	historyRepo := &memHistoryRepo{}
	svc := search.NewService(res, an, analysisRepo, historyRepo)
	h := NewAPIHandler(nil, analysisRepo, favoriteRepo, historyRepo, svc)
	return h, analysisRepo, favoriteRepo, historyRepo
}

func TestSearchHandlerSuccess(t *testing.T) {
	res := &fakeResolver{song: &model.ResolvedSong{Title: "Chandelier", Artist: "Sia", Lyrics: "..."}}
	an := &fakeAnalyzer{result: &analysis.Analysis{Kind: analysis.KindLyricsGrounded, Text: "Analysis text."}}
	h, _, _, historyRepo := newTestHandler(res, an)

	body, _ := json.Marshal(SearchRequest{Query: "Sia - Chandelier"})
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(body)), 7)
	rec := httptest.NewRecorder()

	h.SearchHandler(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var got model.SongAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Chandelier", got.Title)
	assert.Equal(t, "Analysis text.", got.LyricsAnalysis)
	assert.Len(t, historyRepo.entries, 1)
}

func TestSearchHandlerSongNotFound(t *testing.T) {
	res := &fakeResolver{err: resolver.ErrSongNotFound}
	h, _, _, _ := newTestHandler(res, &fakeAnalyzer{})

	body, _ := json.Marshal(SearchRequest{Query: ""})
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(body)), 7)
	rec := httptest.NewRecorder()

	h.SearchHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchHandlerAnalysisFailure(t *testing.T) {
	res := &fakeResolver{song: &model.ResolvedSong{Title: "Stay", Artist: "Rihanna"}}
	an := &fakeAnalyzer{err: &analysis.AnalysisError{Err: errors.New("model unavailable")}}
	h, _, _, _ := newTestHandler(res, an)

	body, _ := json.Marshal(SearchRequest{Query: "Stay"})
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(body)), 7)
	rec := httptest.NewRecorder()

	h.SearchHandler(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSearchHandlerPersistenceFailure(t *testing.T) {
	res := &fakeResolver{song: &model.ResolvedSong{Title: "Stay", Artist: "Rihanna"}}
	an := &fakeAnalyzer{result: &analysis.Analysis{Kind: analysis.KindLyricsGrounded, Text: "Text."}}
	h, analysisRepo, _, _ := newTestHandler(res, an)
	analysisRepo.err = errors.New("connection reset")

	body, _ := json.Marshal(SearchRequest{Query: "Stay"})
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(body)), 7)
	rec := httptest.NewRecorder()

	h.SearchHandler(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not be saved")
}

func TestAddFavoriteRejectsDuplicates(t *testing.T) {
	h, analysisRepo, favoriteRepo, _ := newTestHandler(&fakeResolver{}, &fakeAnalyzer{})
	id, err := analysisRepo.CreateAnalysis(&model.SongAnalysis{UserID: 7, Title: "Stay", Artist: "Rihanna"})
	require.NoError(t, err)

	add := func() *httptest.ResponseRecorder {
		body, _ := json.Marshal(AddFavoriteRequest{AnalysisID: id})
		req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/favorites", bytes.NewReader(body)), 7)
		rec := httptest.NewRecorder()
		h.AddFavoriteHandler(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusCreated, add().Code)
	assert.Equal(t, http.StatusConflict, add().Code)
	assert.Len(t, favoriteRepo.favorites, 1)
}

func TestAddFavoriteUnknownAnalysis(t *testing.T) {
	h, _, _, _ := newTestHandler(&fakeResolver{}, &fakeAnalyzer{})

	body, _ := json.Marshal(AddFavoriteRequest{AnalysisID: 42})
	req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/favorites", bytes.NewReader(body)), 7)
	rec := httptest.NewRecorder()

	h.AddFavoriteHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveFavoriteNotFound(t *testing.T) {
	h, _, _, _ := newTestHandler(&fakeResolver{}, &fakeAnalyzer{})

	req := authedRequest(httptest.NewRequest(http.MethodDelete, "/api/favorites/42", nil), 7)
	req = mux.SetURLVars(req, map[string]string{"analysisId": "42"})
	rec := httptest.NewRecorder()

	h.RemoveFavoriteHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteHistoryNotFound(t *testing.T) {
	h, _, _, _ := newTestHandler(&fakeResolver{}, &fakeAnalyzer{})

	req := authedRequest(httptest.NewRequest(http.MethodDelete, "/api/history/9", nil), 7)
	req = mux.SetURLVars(req, map[string]string{"id": "9"})
	rec := httptest.NewRecorder()

	h.DeleteHistoryHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAnalysisHandlerIncludesFavoriteFlag(t *testing.T) {
	h, analysisRepo, favoriteRepo, _ := newTestHandler(&fakeResolver{}, &fakeAnalyzer{})
	id, err := analysisRepo.CreateAnalysis(&model.SongAnalysis{UserID: 7, Title: "Stay", Artist: "Rihanna"})
	require.NoError(t, err)
	_, err = favoriteRepo.AddFavorite(7, id)
	require.NoError(t, err)

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/analyses/1", nil), 7)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()

	h.GetAnalysisHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Analysis   model.SongAnalysis `json:"analysis"`
		IsFavorite bool               `json:"isFavorite"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Stay", got.Analysis.Title)
	assert.True(t, got.IsFavorite)
}

func TestAuthMiddleware(t *testing.T) {
	auth.SetJWTSecret("test-secret")
	h, _, _, _ := newTestHandler(&fakeResolver{}, &fakeAnalyzer{})

	var gotUserID int64
	next := func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	}

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		rec := httptest.NewRecorder()
		h.AuthMiddleware(next)(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		h.AuthMiddleware(next)(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := auth.GenerateToken(7, "tester")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.AuthMiddleware(next)(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(7), gotUserID)
	})
}
