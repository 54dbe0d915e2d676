package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type countObserver struct{ n int }

func (o *countObserver) RateLimited() { o.n++ }

func newLimitedRouter(lim *RateLimiter, obs Observer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(lim, obs))
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func hit(r http.Handler, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":1234"
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware_RateLimitExceeded(t *testing.T) {
	lim := New(Config{PerMinute: 0})
	defer lim.Stop()
	obs := &countObserver{}

	w := hit(newLimitedRouter(lim, obs), "10.0.0.1")

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.JSONEq(t, `{"message":"Too many requests. Please try again later."}`, w.Body.String())
	require.Equal(t, "60", w.Header().Get("Retry-After"))
	require.Equal(t, 1, obs.n)
}

func TestMiddleware_BurstThenReject(t *testing.T) {
	lim := New(Config{PerMinute: 1, Burst: 2})
	defer lim.Stop()
	r := newLimitedRouter(lim, nil)

	require.Equal(t, http.StatusOK, hit(r, "10.0.0.1").Code)
	require.Equal(t, http.StatusOK, hit(r, "10.0.0.1").Code)
	require.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.1").Code)

	// Other clients have their own budget.
	require.Equal(t, http.StatusOK, hit(r, "10.0.0.2").Code)
}

func TestCleanupDropsIdleKeys(t *testing.T) {
	lim := New(Config{PerMinute: 60, Burst: 1, CleanupInterval: time.Hour})
	defer lim.Stop()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lim.now = func() time.Time { return base }
	lim.Allow("a")
	require.Equal(t, 1, lim.Len())

	lim.now = func() time.Time { return base.Add(3 * time.Hour) }
	lim.cleanup()
	require.Zero(t, lim.Len())
}
