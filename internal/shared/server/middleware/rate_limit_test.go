package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(start time.Time) (*time.Time, func() time.Time) {
	now := start
	return &now, func() time.Time { return now }
}

func limitedRouter(limiter *RateLimiter, rules map[string]RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set(userIDKey, id)
		}
		c.Next()
	})
	r.Use(RateLimit(RateLimitConfig{
		Limiter: limiter,
		Rules:   rules,
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/quiz/submissions" {
				return "SUBMIT"
			}
			return ""
		},
	}))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.GET("/api/v1/quiz/questions", ok)
	r.POST("/api/v1/quiz/submissions", ok)
	return r
}

func hit(r http.Handler, method, path, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRateLimitSubmissionsStricterThanDefault(t *testing.T) {
	_, clock := fixedClock(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	r := limitedRouter(NewRateLimiter(clock), map[string]RateLimitRule{
		"DEFAULT": {Rate: 5, Burst: 10},
		"SUBMIT":  {Rate: 1, Burst: 2},
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, http.MethodGet, "/api/v1/quiz/questions", "guest:a").Code)
	}
	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, hit(r, http.MethodPost, "/api/v1/quiz/submissions", "guest:a").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(r, http.MethodPost, "/api/v1/quiz/submissions", "guest:a").Code)

	// Other clients and other groups keep their own budget.
	assert.Equal(t, http.StatusOK, hit(r, http.MethodPost, "/api/v1/quiz/submissions", "guest:b").Code)
	assert.Equal(t, http.StatusOK, hit(r, http.MethodGet, "/api/v1/quiz/questions", "guest:a").Code)
}

func TestRateLimit429Envelope(t *testing.T) {
	_, clock := fixedClock(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	r := limitedRouter(NewRateLimiter(clock), map[string]RateLimitRule{
		"DEFAULT": {Rate: 0.5, Burst: 1},
	})

	require.Equal(t, http.StatusOK, hit(r, http.MethodGet, "/api/v1/quiz/questions", "").Code)
	resp := hit(r, http.MethodGet, "/api/v1/quiz/questions", "")
	require.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "2", resp.Header().Get("Retry-After"))

	var payload struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "rate_limited", payload.Error.Code)
	assert.Equal(t, "DEFAULT", payload.Error.Details["group"])
	assert.EqualValues(t, 2000, payload.Error.Details["retryAfterMs"])
}

func TestRateLimitZeroRuleDisablesGroup(t *testing.T) {
	r := limitedRouter(NewRateLimiter(nil), map[string]RateLimitRule{
		"DEFAULT": {Rate: 0, Burst: 0},
	})
	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, hit(r, http.MethodGet, "/api/v1/quiz/questions", "guest:a").Code)
	}
}

func TestRateLimiterRefillsOverTime(t *testing.T) {
	now, clock := fixedClock(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	limiter := NewRateLimiter(clock)
	rule := RateLimitRule{Rate: 2, Burst: 1}

	ok, _ := limiter.Allow("k", rule)
	require.True(t, ok)
	ok, wait := limiter.Allow("k", rule)
	require.False(t, ok)
	assert.Equal(t, 500*time.Millisecond, wait)

	*now = now.Add(500 * time.Millisecond)
	ok, _ = limiter.Allow("k", rule)
	assert.True(t, ok)
	ok, _ = limiter.Allow("other", rule)
	assert.True(t, ok, "buckets are per key")
}

func TestRateLimiterSweepDropsIdleBuckets(t *testing.T) {
	now, clock := fixedClock(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC))
	limiter := NewRateLimiter(clock)
	limiter.IdleAfter = time.Minute
	rule := RateLimitRule{Rate: 1, Burst: 1}

	limiter.Allow("old", rule)
	*now = now.Add(2 * time.Minute)
	limiter.Allow("fresh", rule)
	require.Equal(t, 2, limiter.Len())

	limiter.Sweep()
	assert.Equal(t, 1, limiter.Len())
}

func TestRetryAfterSecondsRoundsUp(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(200*time.Millisecond))
	assert.Equal(t, 2, retryAfterSeconds(1500*time.Millisecond))
}
