package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/osse101/LuckyWheel_Go/internal/logger"
)

// Guard counts requests and failed host-key attempts per client IP over a
// fixed window. Counters reset together when the window rolls over.
type Guard struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	windowStart time.Time
	requests    map[string]int
	failedAuth  map[string]int
	now         func() time.Time
}

// NewGuard allows limit requests per IP per window
func NewGuard(limit int, window time.Duration) *Guard {
	g := &Guard{limit: limit, window: window, now: time.Now}
	g.reset()
	return g
}

func (g *Guard) reset() {
	g.windowStart = g.now()
	g.requests = make(map[string]int)
	g.failedAuth = make(map[string]int)
}

// rollover must be called with mu held
func (g *Guard) rollover() {
	if g.now().Sub(g.windowStart) > g.window {
		g.reset()
	}
}

// Allow records a request and reports whether ip is still under the limit.
// When it is not, retryAfter is the time left in the current window.
func (g *Guard) Allow(ip string) (ok bool, retryAfter time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rollover()
	g.requests[ip]++
	n := g.requests[ip]
	if n <= g.limit {
		return true, 0
	}
	if n%RateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count", n, "window", g.window)
	}
	return false, g.window - g.now().Sub(g.windowStart)
}

// RecordFailedAuth counts a rejected host key and returns the count so far
func (g *Guard) RecordFailedAuth(ip string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rollover()
	g.failedAuth[ip]++
	n := g.failedAuth[ip]
	if n >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
	return n
}

// HostKeyMiddleware admits requests carrying the host API key. An unset key
// locks the host routes rather than opening them.
func HostKeyMiddleware(apiKey string, trustedProxies []string, guard *Guard) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(HeaderAPIKey)
			if len(want) > 0 && subtle.ConstantTimeCompare([]byte(got), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r, trustedProxies)
			attempts := guard.RecordFailedAuth(ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"path", r.URL.Path,
				"has_key", got != "",
				"ip", ip,
				"attempts", attempts)
			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RateLimitMiddleware rejects clients over the guard's limit with 429 and a
// Retry-After hint
func RateLimitMiddleware(trustedProxies []string, guard *Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, retryAfter := guard.Allow(clientIP(r, trustedProxies))
			if !ok {
				secs := int(retryAfter.Round(time.Second) / time.Second)
				w.Header().Set(HeaderRetryAfter, strconv.Itoa(max(secs, 1)))
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BodyLimitMiddleware caps the request body at maxBytes
func BodyLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets the static hardening headers
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	headers := [][2]string{
		{HeaderContentType, HeaderValueNoSniff},
		{HeaderFrameOptions, HeaderValueSameOrigin},
		{HeaderXSSProtection, HeaderValueXSSBlock},
		{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range headers {
				w.Header().Set(h[0], h[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the connecting address, or the last X-Forwarded-For hop when
// the connection comes from a trusted proxy.
func clientIP(r *http.Request, trustedProxies []string) string {
	remote, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remote = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, remote) {
		return remote
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remote
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}
