package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SongSense/cache"
	"SongSense/config"
	"SongSense/core/analysis"
	"SongSense/core/auth"
	"SongSense/core/resolver"
	"SongSense/core/search"
	"SongSense/core/source"
	"SongSense/db"
	"SongSense/logger"
	"SongSense/model"
	"SongSense/repository"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    cfg.LogMaxSize,
	})

	auth.SetJWTSecret(cfg.JWTSecret)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.DB.Close()

	// Initialize database schema
	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}

	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("Failed to connect GORM", logger.ErrorField(err))
	}
	defer db.CloseGormDB()
	if err := db.AutoMigrateModels(&model.SearchHistory{}, &model.Favorite{}); err != nil {
		logger.Fatal("Failed to migrate models", logger.ErrorField(err))
	}

	// Redis is optional. Resolution works without the cache.
	if err := cache.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, resolved song cache disabled", logger.ErrorField(err))
	} else {
		defer cache.CloseRedis()
		logger.Info("Successfully connected to Redis")
	}

	userRepo := repository.NewMySQLUserRepository(db.DB)
	analysisRepo := repository.NewMySQLAnalysisRepository(db.DB)
	historyRepo := repository.NewGormHistoryRepository(db.GormDB)
	favoriteRepo := repository.NewGormFavoriteRepository(db.GormDB)

	lyricsSources := []source.Source{
		source.NewLyricsOvhSource(cfg.LyricsAPIURL),
		source.NewLrclibSource(cfg.LrclibAPIURL),
	}
	enrichment := source.NewLastFMSource(cfg.LastFMAPIURL, cfg.LastFMAPIKey)
	canonical := source.NewMusicBrainzSource(cfg.MusicBrainzAPIURL)
	songResolver := resolver.New(lyricsSources, enrichment, canonical)

	aiClient := analysis.NewClient(&analysis.ClientConfig{
		APIBaseURL: cfg.AIAPIURL,
		APIKey:     cfg.AIAPIKey,
		Model:      cfg.AIModel,
	})
	engine := analysis.NewEngine(aiClient)

	searchService := search.NewService(songResolver, engine, analysisRepo, historyRepo)

	apiHandler := NewAPIHandler(userRepo, analysisRepo, favoriteRepo, historyRepo, searchService)

	router := mux.NewRouter()

	// CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Authentication endpoints
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)

	// Search and analysis endpoints
	router.HandleFunc("/api/search", apiHandler.AuthMiddleware(apiHandler.SearchHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/analyses/{id}", apiHandler.AuthMiddleware(apiHandler.GetAnalysisHandler)).Methods(http.MethodGet)

	// History endpoints
	router.HandleFunc("/api/history", apiHandler.AuthMiddleware(apiHandler.GetHistoryHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/history/{id}", apiHandler.AuthMiddleware(apiHandler.DeleteHistoryHandler)).Methods(http.MethodDelete)

	// Favorites endpoints
	router.HandleFunc("/api/favorites", apiHandler.AuthMiddleware(apiHandler.GetFavoritesHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/favorites", apiHandler.AuthMiddleware(apiHandler.AddFavoriteHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/favorites/{analysisId}", apiHandler.AuthMiddleware(apiHandler.RemoveFavoriteHandler)).Methods(http.MethodDelete)

	server.Handler = router

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", logger.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}
