package ratelimit

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/chromamind/booth/internal/httputil"
)

const (
	cleanupInterval = 5 * time.Minute
	visitorTTL      = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter is a per-visitor token bucket keyed by client address.
type Limiter struct {
	mu         sync.Mutex
	visitors   map[string]*visitor
	limit      rate.Limit
	burst      int
	retryAfter string
}

// NewLimiter starts a limiter allowing requestsPerSecond with the given burst.
// Idle visitors are evicted until ctx is cancelled.
func NewLimiter(ctx context.Context, requestsPerSecond float64, burst int) *Limiter {
	retry := 1
	if requestsPerSecond > 0 {
		retry = int(math.Ceil(1 / requestsPerSecond))
	}
	l := &Limiter{
		visitors:   make(map[string]*visitor),
		limit:      rate.Limit(requestsPerSecond),
		burst:      burst,
		retryAfter: strconv.Itoa(retry),
	}
	go l.cleanup(ctx)
	return l
}

func (l *Limiter) allow(key string) bool {
	l.mu.Lock()
	v, exists := l.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()

	return v.limiter.Allow()
}

func (l *Limiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evict(time.Now().Add(-visitorTTL))
		}
	}
}

func (l *Limiter) evict(before time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if v.lastSeen.Before(before) {
			delete(l.visitors, key)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Middleware answers limited requests with a JSON 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return l.RejectWith(rejectJSON)(next)
}

// RejectWith returns middleware that sets Retry-After and hands limited
// requests to reject, which writes the 429 in its own format.
func (l *Limiter) RejectWith(reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientKey(r)) {
				w.Header().Set("Retry-After", l.retryAfter)
				reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rejectJSON(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteError(w, http.StatusTooManyRequests, "too many requests")
}

// clientKey prefers the first X-Forwarded-For hop, then the remote host.
func clientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
