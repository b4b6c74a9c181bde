package ratelimiter

import (
	"net/http"
	"sync"
	"time"
)

const defaultSourceKey = "X-RateLimit-Key"

type Limiter interface {
	Allow(sourceKey string) bool
	Remaining(sourceKey string) int
	GetMaxBurst() int
	GetSourceKey(r *http.Request) string
	Close() error
}

type bucket struct {
	tokens    float64
	lastFill  time.Time
	expiresAt time.Time
}

// RateLimiter is a per-source token bucket over an in-memory map. Idle
// buckets are reclaimed by a background cleanup goroutine after the TTL.
type RateLimiter struct {
	ratePerSecond   float64
	maxBurst        int
	ttl             time.Duration
	sourceHeaderKey string

	mu      sync.Mutex
	buckets map[string]*bucket

	stopClean chan struct{}
	cleanOnce sync.Once
}

type Options struct {
	MaxRatePerSecond int
	MaxBurst         int
	CacheTTL         time.Duration
	SourceHeaderKey  string
}

func New(options Options) *RateLimiter {
	if options.CacheTTL == 0 {
		options.CacheTTL = 5 * time.Minute
	}
	if options.MaxBurst <= 0 {
		options.MaxBurst = options.MaxRatePerSecond
	}
	if options.SourceHeaderKey == "" {
		options.SourceHeaderKey = defaultSourceKey
	}

	rl := &RateLimiter{
		ratePerSecond:   float64(options.MaxRatePerSecond),
		maxBurst:        options.MaxBurst,
		ttl:             options.CacheTTL,
		sourceHeaderKey: options.SourceHeaderKey,
		buckets:         make(map[string]*bucket),
		stopClean:       make(chan struct{}),
	}

	go rl.cleanupExpired()

	return rl
}

// Allow consumes one token from the source's bucket if available.
func (rl *RateLimiter) Allow(sourceKey string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b := rl.refill(sourceKey)
	if b.tokens < 1 {
		return false
	}

	b.tokens--

	return true
}

func (rl *RateLimiter) Remaining(sourceKey string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return int(rl.refill(sourceKey).tokens)
}

func (rl *RateLimiter) GetMaxBurst() int {
	return rl.maxBurst
}

func (rl *RateLimiter) GetSourceKey(r *http.Request) string {
	if key := r.Header.Get(rl.sourceHeaderKey); key != "" {
		return key
	}

	// Fall back to IP address
	return r.RemoteAddr
}

// refill tops up the source's bucket for the time elapsed since the last
// fill. The caller must hold the lock.
func (rl *RateLimiter) refill(sourceKey string) *bucket {
	now := time.Now()

	b, ok := rl.buckets[sourceKey]
	if !ok {
		b = &bucket{tokens: float64(rl.maxBurst), lastFill: now}
		rl.buckets[sourceKey] = b
	}

	elapsed := now.Sub(b.lastFill).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * rl.ratePerSecond
		if b.tokens > float64(rl.maxBurst) {
			b.tokens = float64(rl.maxBurst)
		}
		b.lastFill = now
	}

	b.expiresAt = now.Add(rl.ttl)

	return b
}

func (rl *RateLimiter) cleanupExpired() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.removeExpired()
		case <-rl.stopClean:
			return
		}
	}
}

func (rl *RateLimiter) removeExpired() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, b := range rl.buckets {
		if now.After(b.expiresAt) {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) Close() error {
	rl.cleanOnce.Do(func() {
		close(rl.stopClean)
	})
	return nil
}
