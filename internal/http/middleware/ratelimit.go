package middleware

import (
	"net/http"
	"sync"
	"time"
)

// Idle buckets are swept so one-off visitors do not accumulate; a bucket
// untouched for staleAfter has long since refilled and can be rebuilt.
const (
	sweepInterval = 5 * time.Minute
	staleAfter    = 10 * time.Minute
)

// limiter applies a per-IP token bucket. The public booking endpoints are
// anonymous, so the remote IP is the only identity to throttle on.
type limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64 // tokens per second
	burst   int
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

func newLimiter(rate float64, burst int) *limiter {
	l := &limiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		burst:   burst,
	}
	go l.sweep()
	return l
}

// allow reports whether a request from ip fits the budget and spends one
// token when it does.
func (l *limiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{tokens: float64(l.burst), lastSeen: now}
		l.buckets[ip] = b
	}

	b.tokens += now.Sub(b.lastSeen).Seconds() * l.rate
	if b.tokens > float64(l.burst) {
		b.tokens = float64(l.burst)
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (l *limiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-staleAfter)
		l.mu.Lock()
		for ip, b := range l.buckets {
			if b.lastSeen.Before(cutoff) {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit rejects requests exceeding rate requests/sec (with the given
// burst) per client IP with 429 Too Many Requests.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	l := newLimiter(rate, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			// chi's RealIP middleware rewrites this header upstream.
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				ip = xri
			}
			if !l.allow(ip) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
