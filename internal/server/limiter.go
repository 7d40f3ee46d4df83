package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's limiter survives without requests.
const limiterIdleTTL = 10 * time.Minute

// Limiter implements per-client rate limiting keyed by remote address.
// Limiters of idle clients expire, so the set stays bounded by recent traffic.
type Limiter struct {
	clients      *gocache.Cache
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter. A non-positive rate disables limiting.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	return newLimiter(requestsPerSecond, burst, limiterIdleTTL)
}

func newLimiter(requestsPerSecond float64, burst int, idle time.Duration) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		clients:      gocache.New(idle, idle),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Allow checks if a request from client is allowed without waiting.
func (l *Limiter) Allow(client string) bool {
	if l.defaultRate <= 0 {
		return true
	}
	return l.getLimiter(client).Allow()
}

// Clients reports how many client limiters are held, expired ones included
// until the next cleanup.
func (l *Limiter) Clients() int {
	return l.clients.ItemCount()
}

// getLimiter returns the rate limiter for a client and restarts its idle
// timer.
func (l *Limiter) getLimiter(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.clients.Get(client)
	if !ok {
		limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	}
	l.clients.SetDefault(client, limiter)

	return limiter.(*rate.Limiter)
}

// Middleware rejects requests over the limit with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientKey(r)) {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey extracts the host part of the remote address.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
