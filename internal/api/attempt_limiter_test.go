package api

import (
	"testing"
	"time"
)

func TestAttemptLimiterWindowAndReset(t *testing.T) {
	t.Parallel()

	limiter := newAttemptLimiter(2, time.Hour)
	key := "127.0.0.1"
	now := time.Now().UTC()

	limiter.fail(key, now.Add(-2*time.Hour))
	limiter.fail(key, now.Add(-90*time.Minute))
	if limiter.blocked(key, now) {
		t.Fatal("expected attempts outside the window to be pruned")
	}

	limiter.fail(key, now.Add(-30*time.Minute))
	if limiter.blocked(key, now) {
		t.Fatal("expected one recent failure to stay under limit 2")
	}
	limiter.fail(key, now.Add(-10*time.Minute))
	if !limiter.blocked(key, now) {
		t.Fatal("expected two recent failures to hit limit 2")
	}
	if limiter.blocked("10.0.0.1", now) {
		t.Fatal("expected other keys to be unaffected")
	}

	limiter.reset(key)
	if limiter.blocked(key, now) {
		t.Fatal("expected no failures after reset")
	}
}
