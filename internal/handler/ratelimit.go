package handler

import (
	"math"
	"sync"
	"time"
)

// rateLimiter is a keyed token bucket with TTL eviction of idle keys,
// applied per client IP on the public booking routes.
type rateLimiter struct {
	rate     float64 // tokens per second
	capacity float64
	idleTTL  time.Duration

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	tokens   float64
	lastRef  time.Time
	lastSeen time.Time
}

const sweepInterval = time.Minute

func newRateLimiter(burst int, refillPerMin int, idleTTL time.Duration) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	if refillPerMin < 1 {
		refillPerMin = 1
	}
	if idleTTL <= 0 {
		idleTTL = 15 * time.Minute
	}
	return &rateLimiter{
		rate:      float64(refillPerMin) / 60.0,
		capacity:  float64(burst),
		idleTTL:   idleTTL,
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

// allow consumes one token for key. When the bucket is empty it returns
// false along with the seconds to wait before the next token arrives.
func (l *rateLimiter) allow(key string, now time.Time) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweepLocked(now)
	}

	b := l.buckets[key]
	if b == nil {
		b = &bucket{tokens: l.capacity, lastRef: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRef).Seconds()
	if elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.rate)
		b.lastRef = now
	}
	b.lastSeen = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true, 0
	}

	retryAfter := int(math.Ceil((1.0 - b.tokens) / l.rate))
	if retryAfter < 1 {
		retryAfter = 1
	}
	return false, retryAfter
}

func (l *rateLimiter) sweepLocked(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
