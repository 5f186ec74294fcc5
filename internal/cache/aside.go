package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medialane/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const (
	ArticleKeyPrefix = "article:%s"
	VideoKeyPrefix   = "video:%s"
	CategoriesKey    = "videos:categories"
	ArticleTagsKey   = "articles:tags"
)

const (
	ArticleTTL    = 10 * time.Minute
	VideoTTL      = 10 * time.Minute
	CategoriesTTL = time.Hour
	TagsTTL       = 5 * time.Minute
)

func ArticleKey(slug string) string {
	return fmt.Sprintf(ArticleKeyPrefix, slug)
}

func VideoKey(slug string) string {
	return fmt.Sprintf(VideoKeyPrefix, slug)
}

// Aside reads key into dest, or runs load and stores dest under key for ttl.
// Without a client it just runs load. Cache errors never fail the read.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if jsonErr := json.Unmarshal(raw, dest); jsonErr == nil {
			return nil
		}
	} else if !errors.Is(err, redis.Nil) {
		middleware.Logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
	}

	if err := load(); err != nil {
		return err
	}

	encoded, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	if err := client.Set(ctx, key, encoded, ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
	return nil
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidateArticle(ctx context.Context, slugs ...string) {
	keys := make([]string, 0, len(slugs)+1)
	for _, slug := range slugs {
		keys = append(keys, ArticleKey(slug))
	}
	Invalidate(ctx, append(keys, ArticleTagsKey)...)
}

func InvalidateVideo(ctx context.Context, slugs ...string) {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, VideoKey(slug))
	}
	Invalidate(ctx, keys...)
}
