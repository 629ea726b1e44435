package http

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"fintrack/internal/cache"
)

// rateLimiter tracks per-client request counts over a one-minute window. The
// counters live in a TTL'd LRU so stale clients age out and the map stays
// bounded.
type rateLimiter struct {
	perMinute int
	clients   *cache.LRU[*clientWindow]
}

type clientWindow struct {
	mu          sync.Mutex
	windowStart time.Time
	requests    int
}

const maxTrackedClients = 10000

func newRateLimiter(perMinute int) *rateLimiter {
	return &rateLimiter{
		perMinute: perMinute,
		clients:   cache.NewLRU[*clientWindow](maxTrackedClients, 10*time.Minute),
	}
}

func (rl *rateLimiter) allow(clientIP string) bool {
	w, ok := rl.clients.Get(clientIP)
	if !ok {
		w = &clientWindow{windowStart: time.Now(), requests: 0}
		rl.clients.Set(clientIP, w)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if now.Sub(w.windowStart) > time.Minute {
		w.windowStart = now
		w.requests = 0
	}
	w.requests++
	return w.requests <= rl.perMinute
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the socket
// address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
