package ratelimit

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pradeepsavadi/snowflake-observability/pkg/config"
	"github.com/pradeepsavadi/snowflake-observability/pkg/logger"
)

// Limiter is a per-caller token bucket. Every dashboard request behind it
// can fan out into ACCOUNT_USAGE queries, so the cap protects the warehouse
// more than the API itself.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	max     int
	refill  time.Duration
	now     func() time.Time
	done    chan struct{}
}

// refillMark is the instant up to which tokens have been credited; it only
// advances in whole refill intervals so partial progress toward the next
// token is never lost.
type bucket struct {
	tokens     int
	refillMark time.Time
	lastSeen   time.Time
}

func New(cfg config.RateLimitConfig) *Limiter {
	max := cfg.MaxRequestsPerMinute
	if max <= 0 {
		max = 120
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		max:     max,
		refill:  time.Minute / time.Duration(max),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go l.evictLoop()
	return l
}

// Middleware identifies callers by the X-User header when present and by
// client IP otherwise.
func (l *Limiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-User")
		if key == "" {
			key = c.IP()
		}

		if !l.allow(key) {
			logger.Warn("Rate limit exceeded",
				zap.String("caller", key),
				zap.String("path", c.Path()),
			)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "rate limit exceeded",
			})
		}
		return c.Next()
	}
}

func (l *Limiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		l.buckets[key] = &bucket{tokens: l.max - 1, refillMark: now, lastSeen: now}
		return true
	}

	if refilled := int(now.Sub(b.refillMark) / l.refill); refilled > 0 {
		b.tokens += refilled
		if b.tokens > l.max {
			b.tokens = l.max
		}
		b.refillMark = b.refillMark.Add(time.Duration(refilled) * l.refill)
	}
	b.lastSeen = now

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

func (l *Limiter) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			cutoff := l.now().Add(-10 * time.Minute)
			l.mu.Lock()
			for key, b := range l.buckets {
				if b.lastSeen.Before(cutoff) {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

func (l *Limiter) Stop() {
	close(l.done)
}
