package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"aerogap-backend/internal/shared/server/respond"
)

const (
	defaultRateLimitGroup = "DEFAULT"
	defaultBucketIdle     = 10 * time.Minute
	sweepThreshold        = 4096
)

// RateLimitRule is a token bucket: Rate tokens per second up to Burst.
// A zero rule disables limiting for its group.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

func (r RateLimitRule) disabled() bool {
	return r.Rate <= 0 || r.Burst <= 0
}

// RateLimitConfig maps route groups to rules. Requests whose group has no
// rule pass through.
type RateLimitConfig struct {
	Rules        map[string]RateLimitRule
	DefaultGroup string
	GroupFor     func(*gin.Context) string
	Limiter      *RateLimiter
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client and group. Buckets idle
// longer than IdleAfter are dropped once the table grows past a threshold.
type RateLimiter struct {
	IdleAfter time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		IdleAfter: defaultBucketIdle,
		buckets:   make(map[string]*bucket),
		now:       now,
	}
}

// RateLimit rejects requests over their group's budget with 429 and a
// Retry-After header. Clients are keyed by identity, falling back to IP.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(nil)
	}
	if cfg.DefaultGroup == "" {
		cfg.DefaultGroup = defaultRateLimitGroup
	}
	return func(c *gin.Context) {
		group := cfg.DefaultGroup
		if cfg.GroupFor != nil {
			if g := strings.TrimSpace(cfg.GroupFor(c)); g != "" {
				group = g
			}
		}
		rule, ok := cfg.Rules[group]
		if !ok || rule.disabled() {
			c.Next()
			return
		}

		allowed, wait := cfg.Limiter.Allow(group+"|"+clientKey(c), rule)
		if allowed {
			c.Next()
			return
		}
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "too many requests", gin.H{
			"group":        group,
			"retryAfterMs": wait.Milliseconds(),
		})
	}
}

func clientKey(c *gin.Context) string {
	if id := strings.TrimSpace(UserIDFromContext(c)); id != "" {
		return id
	}
	return "ip:" + c.ClientIP()
}

func retryAfterSeconds(wait time.Duration) int {
	secs := int((wait + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

// Allow takes one token from the bucket for key. When the bucket is empty it
// reports how long until a token is available and consumes nothing.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.disabled() {
		return true, 0
	}
	now := l.now()
	limit := rate.Limit(rule.Rate)

	l.mu.Lock()
	b, ok := l.buckets[key]
	switch {
	case !ok:
		if len(l.buckets) >= sweepThreshold {
			l.sweepLocked(now)
		}
		b = &bucket{lim: rate.NewLimiter(limit, rule.Burst)}
		l.buckets[key] = b
	case b.lim.Limit() != limit || b.lim.Burst() != rule.Burst:
		b.lim.SetLimitAt(now, limit)
		b.lim.SetBurstAt(now, rule.Burst)
	}
	b.lastSeen = now
	lim := b.lim
	l.mu.Unlock()

	res := lim.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Len reports the number of live buckets.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Sweep drops buckets not used within IdleAfter.
func (l *RateLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked(l.now())
}

func (l *RateLimiter) sweepLocked(now time.Time) {
	idle := l.IdleAfter
	if idle <= 0 {
		idle = defaultBucketIdle
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > idle {
			delete(l.buckets, key)
		}
	}
}
