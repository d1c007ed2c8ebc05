package handler

import (
	"testing"
	"time"
)

func TestRateLimiterBurstThenRefill(t *testing.T) {
	l := newRateLimiter(3, 60, time.Minute) // 1 token per second

	now := time.Now()
	for i := 0; i < 3; i++ {
		if ok, _ := l.allow("1.2.3.4", now); !ok {
			t.Fatalf("request %d within burst was denied", i+1)
		}
	}

	ok, retryAfter := l.allow("1.2.3.4", now)
	if ok {
		t.Fatal("request beyond burst was allowed")
	}
	if retryAfter < 1 {
		t.Fatalf("retryAfter = %d, want >= 1", retryAfter)
	}

	if ok, _ := l.allow("1.2.3.4", now.Add(2*time.Second)); !ok {
		t.Fatal("request after refill was denied")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	l := newRateLimiter(1, 1, time.Minute)

	now := time.Now()
	if ok, _ := l.allow("a", now); !ok {
		t.Fatal("first request for key a denied")
	}
	if ok, _ := l.allow("a", now); ok {
		t.Fatal("second request for key a allowed")
	}
	if ok, _ := l.allow("b", now); !ok {
		t.Fatal("first request for key b denied")
	}
}

func TestRateLimiterSweepsIdleKeys(t *testing.T) {
	l := newRateLimiter(1, 1, time.Second)

	now := time.Now()
	l.allow("idle", now)
	l.allow("fresh", now.Add(2*time.Minute)) // triggers the sweep

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.buckets["idle"]; exists {
		t.Fatal("idle bucket survived the sweep")
	}
	if _, exists := l.buckets["fresh"]; !exists {
		t.Fatal("fresh bucket was swept")
	}
}
