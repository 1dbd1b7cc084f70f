package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"SongSense/logger"
	"SongSense/model"

	"github.com/go-redis/redis/v8"
)

// Resolved songs are cached for a day; AI analyses are intentionally
// never cached (every search produces a fresh record).
const resolvedSongTTL = 24 * time.Hour

// songKey builds the cache key for a resolved song.
func songKey(artist, title string) string {
	normalize := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
	}
	return fmt.Sprintf("resolved:%s|%s", normalize(artist), normalize(title))
}

// GetResolvedSong returns a cached resolution, or nil on miss or when
// the cache is disabled. Cache errors are soft.
func GetResolvedSong(ctx context.Context, artist, title string) *model.ResolvedSong {
	if RedisClient == nil {
		return nil
	}

	val, err := RedisClient.Get(ctx, songKey(artist, title)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Failed to read resolved song from cache", logger.ErrorField(err))
		}
		return nil
	}

	var song model.ResolvedSong
	if err := json.Unmarshal([]byte(val), &song); err != nil {
		logger.Warn("Failed to unmarshal cached resolved song", logger.ErrorField(err))
		return nil
	}
	return &song
}

// SetResolvedSong stores a resolution under the querying identity
// (the parsed artist/title, which may differ from the canonical one).
// Errors are logged, never propagated.
func SetResolvedSong(ctx context.Context, artist, title string, song *model.ResolvedSong) {
	if RedisClient == nil || song == nil {
		return
	}

	data, err := json.Marshal(song)
	if err != nil {
		logger.Warn("Failed to marshal resolved song for cache", logger.ErrorField(err))
		return
	}

	if err := RedisClient.Set(ctx, songKey(artist, title), data, resolvedSongTTL).Err(); err != nil {
		logger.Warn("Failed to write resolved song to cache", logger.ErrorField(err))
	}
}
