package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedArticle struct {
	Slug  string `json:"slug"`
	Reads int    `json:"reads"`
}

func withMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_LoadsOnceThenServesFromCache(t *testing.T) {
	mr := withMiniRedis(t)
	ctx := context.Background()
	loads := 0
	load := func(dest *cachedArticle) func() error {
		return func() error {
			loads++
			*dest = cachedArticle{Slug: "hello-world", Reads: 3}
			return nil
		}
	}

	var first cachedArticle
	require.NoError(t, Aside(ctx, ArticleKey("hello-world"), &first, ArticleTTL, load(&first)))
	var second cachedArticle
	require.NoError(t, Aside(ctx, ArticleKey("hello-world"), &second, ArticleTTL, load(&second)))

	assert.Equal(t, 1, loads)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("article:hello-world"))
	assert.Equal(t, ArticleTTL, mr.TTL("article:hello-world"))
}

func TestAside_LoadErrorIsNotCached(t *testing.T) {
	mr := withMiniRedis(t)
	boom := errors.New("boom")

	var dest cachedArticle
	err := Aside(context.Background(), VideoKey("x"), &dest, VideoTTL, func() error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("video:x"))
}

func TestAside_WithoutClientRunsLoad(t *testing.T) {
	SetClient(nil)
	called := false
	var dest cachedArticle
	require.NoError(t, Aside(context.Background(), "k", &dest, time.Minute, func() error {
		called = true
		return nil
	}))
	assert.True(t, called)
}

func TestInvalidateArticle(t *testing.T) {
	mr := withMiniRedis(t)
	require.NoError(t, mr.Set("article:a", "{}"))
	require.NoError(t, mr.Set(ArticleTagsKey, "[]"))
	require.NoError(t, mr.Set("article:b", "{}"))

	InvalidateArticle(context.Background(), "a")

	assert.False(t, mr.Exists("article:a"))
	assert.False(t, mr.Exists(ArticleTagsKey))
	assert.True(t, mr.Exists("article:b"))
}

func TestInitRedis_UnreachableLeavesClientNil(t *testing.T) {
	t.Cleanup(func() { SetClient(nil) })
	assert.Nil(t, InitRedis("127.0.0.1:1"))
	assert.Nil(t, GetClient())
}
