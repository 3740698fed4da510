package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	authdomain "go-taskbot/internal/pkg/auth/application/domain"
	authmw "go-taskbot/internal/pkg/auth/presentation/middleware"
)

// fakeCache counts increments in memory; err simulates a Redis outage.
type fakeCache struct {
	counts map[string]int64
	err    error
}

func newFakeCache() *fakeCache {
	return &fakeCache{counts: map[string]int64{}}
}

func (f *fakeCache) Get(context.Context, string) (string, error) { return "", nil }
func (f *fakeCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}
func (f *fakeCache) Del(context.Context, ...string) (int64, error) { return 0, nil }
func (f *fakeCache) Ping(context.Context) error                    { return nil }
func (f *fakeCache) Close() error                                  { return nil }

func (f *fakeCache) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func limitedRouter(cache *fakeCache, perMinute int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/chat",
		func(c *gin.Context) {
			authmw.SetCurrentUser(c, &authdomain.User{ID: "u1", Email: "a@b.test"})
		},
		RateLimit(cache, perMinute, slog.New(slog.DiscardHandler)),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestRateLimitAllowsUnderLimit(t *testing.T) {
	r := limitedRouter(newFakeCache(), 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	r := limitedRouter(newFakeCache(), 2)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitFailsOpenOnCacheError(t *testing.T) {
	cache := newFakeCache()
	cache.err = fmt.Errorf("redis down")
	r := limitedRouter(cache, 1)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestChatRateLimitFromEnv(t *testing.T) {
	t.Setenv("CHAT_RATE_LIMIT", "")
	require.Equal(t, DefaultChatRateLimit, ChatRateLimitFromEnv())

	t.Setenv("CHAT_RATE_LIMIT", "50")
	require.Equal(t, 50, ChatRateLimitFromEnv())

	t.Setenv("CHAT_RATE_LIMIT", "garbage")
	require.Equal(t, DefaultChatRateLimit, ChatRateLimitFromEnv())
}
