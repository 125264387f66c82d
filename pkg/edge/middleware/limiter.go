package middleware

import (
	"net/http"
	"sync"
)

type limiter struct {
	active map[string]int
	mu     sync.Mutex
	limit  int
}

func newLimiter(limit int) *limiter {
	return &limiter{
		active: make(map[string]int),
		limit:  limit,
	}
}

// acquire reserves a slot for key. It returns false when key already holds limit slots.
func (l *limiter) acquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.active[key] >= l.limit {
		return false
	}

	l.active[key]++

	return true
}

// release frees a slot held by key and forgets keys with no slots left.
func (l *limiter) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.active[key] <= 1 {
		delete(l.active, key)
		return
	}

	l.active[key]--
}

// LimitClients caps the number of requests served concurrently for a single client address.
// The address comes from ClientIP, which must run earlier in the chain. Requests over the cap
// are answered with 429. A limit below 1 disables the cap.
func LimitClients(limit int) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit < 1 {
			return next
		}

		l := newLimiter(limit)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientIPFromRequest(r)

			if !l.acquire(key) {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}

			defer l.release(key)

			next.ServeHTTP(w, r)
		})
	}
}
