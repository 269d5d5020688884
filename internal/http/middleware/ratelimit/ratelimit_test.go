package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	testlog "jamjam-delivery/internal/testutil"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestTokenBucket_BurstThenRefill(t *testing.T) {
	t.Parallel()

	clock := newClock()
	l := NewTokenBucketLimiter(clock, Config{Limit: 2, Window: time.Second})

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("burst requests should pass")
	}
	if l.Allow("a") {
		t.Fatal("third request within the window should be rejected")
	}

	clock.Advance(500 * time.Millisecond)
	if !l.Allow("a") {
		t.Fatal("one token should have refilled after half a window")
	}
	if l.Allow("a") {
		t.Fatal("no more tokens yet")
	}
}

func TestTokenBucket_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	l := NewTokenBucketLimiter(newClock(), Config{Limit: 1, Window: time.Second})

	if !l.Allow("a") {
		t.Fatal("first key should pass")
	}
	if !l.Allow("b") {
		t.Fatal("second key should pass")
	}
	if l.Allow("a") {
		t.Fatal("first key should be exhausted")
	}
}

func TestTokenBucket_CapsAtBurst(t *testing.T) {
	t.Parallel()

	clock := newClock()
	l := NewTokenBucketLimiter(clock, Config{Limit: 2, Window: time.Second})

	clock.Advance(time.Hour)
	for i := 0; i < 2; i++ {
		if !l.Allow("a") {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if l.Allow("a") {
		t.Fatal("tokens must not accumulate past the burst size")
	}
}

func TestTokenBucket_EvictsIdleBuckets(t *testing.T) {
	t.Parallel()

	clock := newClock()
	l := NewTokenBucketLimiter(clock, Config{Limit: 2, Window: time.Second, TTL: 3 * time.Minute})

	for _, key := range []string{"a", "b", "c"} {
		l.Allow(key)
	}

	clock.Advance(10 * time.Minute)
	l.Allow("fresh")

	l.mu.Lock()
	n := len(l.buckets)
	_, stale := l.buckets["a"]
	l.mu.Unlock()

	if stale {
		t.Fatal("idle bucket survived past the TTL")
	}
	if n != 1 {
		t.Fatalf("bucket count = %d, want 1", n)
	}
}

func TestTokenBucket_CapsBucketCount(t *testing.T) {
	t.Parallel()

	l := NewTokenBucketLimiter(newClock(), Config{Limit: 5, Window: time.Second, MaxBuckets: 2})

	if !l.Allow("a") || !l.Allow("b") {
		t.Fatal("keys within the cap should pass")
	}
	if l.Allow("c") {
		t.Fatal("new key past MaxBuckets should be rejected")
	}
	if !l.Allow("a") {
		t.Fatal("known key should still pass at the cap")
	}
}

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

func TestMiddleware_RejectsWith429(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	m := New(rec.Logger(), nil, denyAll{})

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()

	m.Handler()(next).ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("Retry-After = %q", got)
	}
	if warns := rec.Messages("warn"); len(warns) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warns))
	}
}

func TestMiddleware_PassesThrough(t *testing.T) {
	t.Parallel()

	m := New(nil, nil, nil)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	m.Handler()(next).ServeHTTP(w, req)

	if !called {
		t.Fatal("next was not called")
	}
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		remote string
		want   string
	}{
		{"10.0.0.1:1234", "10.0.0.1"},
		{"10.0.0.2", "10.0.0.2"},
		{"", "unknown"},
	} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = tc.remote
		if got := clientIP(r); got != tc.want {
			t.Fatalf("clientIP(%q) = %q, want %q", tc.remote, got, tc.want)
		}
	}
}
