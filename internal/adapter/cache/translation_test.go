package cache

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/skillquest-backend/internal/adapter/postgres/testhelper"
)

func TestKey(t *testing.T) {
	t.Parallel()

	k := Key("en", "es", "Hello world")
	assert.Regexp(t, regexp.MustCompile(`^translate:en:es:[0-9a-f]{64}$`), k)
	assert.Equal(t, k, Key("en", "es", "Hello world"))
	assert.NotEqual(t, k, Key("en", "fr", "Hello world"))
	assert.NotEqual(t, k, Key("en", "es", "Hello world!"))
}

func TestNewTranslationCache_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewTranslationCache(context.Background(), "not-a-redis-url", time.Hour,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}

func TestTranslationCache_Integration_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	t.Parallel()

	ctx := context.Background()
	c, err := NewTranslationCache(ctx, testhelper.SetupTestRedis(t), time.Minute,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	q := "Start with fundamentals " + uuid.NewString()

	_, ok, err := c.Get(ctx, "en", "es", q)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "en", "es", q, "Empieza por lo básico"))

	got, ok, err := c.Get(ctx, "en", "es", q)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Empieza por lo básico", got)

	_, ok, err = c.Get(ctx, "en", "fr", q)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Ping(ctx))
}
