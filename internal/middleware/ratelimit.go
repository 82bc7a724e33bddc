package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/marking-day/internal/response"
)

// RateLimiter implements a per-IP token bucket that refills continuously.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	perSec   float64
	burst    float64
	now      func() time.Time
}

type visitor struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per IP per minute, with bursts
// up to the same amount.
func NewRateLimiter(perMinute int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		perSec:   float64(perMinute) / 60,
		burst:    float64(perMinute),
		now:      time.Now,
	}
}

// Allow reports whether a request from key may proceed, consuming a token.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{tokens: rl.burst, lastSeen: now}
		rl.visitors[key] = v
	}

	if elapsed := now.Sub(v.lastSeen).Seconds(); elapsed > 0 {
		v.tokens = min(rl.burst, v.tokens+elapsed*rl.perSec)
	}
	v.lastSeen = now

	if v.tokens < 1 {
		return false
	}
	v.tokens--
	return true
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

// Sweep drops visitors idle for longer than idle.
func (rl *RateLimiter) Sweep(idle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > idle {
			delete(rl.visitors, ip)
		}
	}
}

// SweepEvery runs Sweep on a ticker until stop is closed.
func (rl *RateLimiter) SweepEvery(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.Sweep(3 * interval)
		case <-stop:
			return
		}
	}
}
