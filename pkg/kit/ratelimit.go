package kit

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// IPRateLimiter counts hits per client IP in fixed windows. Windows of
// clients that went quiet are swept on later calls so the map stays small.
type IPRateLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	clients   map[string]*fixedWindow
	lastSweep time.Time
	now       func() time.Time
}

type fixedWindow struct {
	start time.Time
	count int
}

func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limit:   limit,
		window:  window,
		clients: make(map[string]*fixedWindow),
		now:     time.Now,
	}
}

// Middleware answers 429 with Retry-After once a client spends its budget.
// A non-positive limit turns it into a pass-through.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	if l.limit <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := l.take(clientIP(r))
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Allow records a hit for ip and reports whether it fits in the current window.
func (l *IPRateLimiter) Allow(ip string) bool {
	ok, _ := l.take(ip)
	return ok
}

func (l *IPRateLimiter) take(ip string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	fw, found := l.clients[ip]
	if !found || now.Sub(fw.start) >= l.window {
		l.clients[ip] = &fixedWindow{start: now, count: 1}
		return true, 0
	}
	if fw.count >= l.limit {
		return false, fw.start.Add(l.window).Sub(now)
	}
	fw.count++
	return true, 0
}

func (l *IPRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for ip, fw := range l.clients {
		if now.Sub(fw.start) >= l.window {
			delete(l.clients, ip)
		}
	}
	l.lastSweep = now
}

// clientIP trusts the first X-Forwarded-For hop; the process is expected to
// sit behind a proxy that sets it.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
