package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Buckets that have not been touched for this long are dropped by the
// background sweep. Anything shorter would evict clients that browse in
// bursts and come back full.
const bucketIdleExpiry = 10 * time.Minute

// RateLimiter throttles requests per client IP with token buckets. The
// whole API sits behind one limiter; voting and commenting are the
// endpoints it exists for.
type RateLimiter struct {
	buckets sync.Map // client IP -> *bucket
	stop    chan struct{}
}

type bucket struct {
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter creates a limiter whose idle buckets are swept every
// sweepInterval. Call Stop on shutdown.
func NewRateLimiter(sweepInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{})}
	go rl.sweep(sweepInterval)
	return rl
}

// Stop terminates the background sweep goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware allowing maxPerMinute requests per client.
// Rejections carry a Retry-After hint.
func (rl *RateLimiter) Limit(maxPerMinute int) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := rl.getBucket(clientIP(r), maxPerMinute)
			if !b.allow() {
				retryAfter := 60.0 / float64(maxPerMinute)
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter)+1))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys buckets by address only, so reconnects from the same
// client land in the same bucket regardless of source port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) getBucket(key string, maxPerMinute int) *bucket {
	maxTokens := float64(maxPerMinute)

	val, _ := rl.buckets.LoadOrStore(key, &bucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: maxTokens / 60.0,
		lastRefill: time.Now(),
	})

	return val.(*bucket)
}

func (b *bucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * b.refillRate
	if b.tokens > b.maxTokens {
		b.tokens = b.maxTokens
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.buckets.Range(func(key, value any) bool {
				b := value.(*bucket)
				b.mu.Lock()
				idle := now.Sub(b.lastRefill)
				b.mu.Unlock()
				if idle > bucketIdleExpiry {
					rl.buckets.Delete(key)
				}
				return true
			})
		}
	}
}
