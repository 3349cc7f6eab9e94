package rest

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/userhub/internal/logging"
	"github.com/gin-gonic/gin"
)

// unknownClientKey is shared by every request whose address can't be resolved.
const unknownClientKey = "unknown-ip"

type window struct {
	start time.Time
	count int
}

// LoginLimiter counts attempts per key in fixed windows anchored at the
// first attempt. Rejected attempts are not counted and never extend the
// window. State is in memory and local to the process.
type LoginLimiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	limit     int
	period    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewLoginLimiter(limit int, period time.Duration) *LoginLimiter {
	return &LoginLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Take records an attempt for key. It returns whether the attempt is
// allowed, how many remain in the window and when the window resets.
func (l *LoginLimiter) Take(key string) (bool, int, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || !now.Before(w.start.Add(l.period)) {
		w = &window{start: now}
		l.windows[key] = w
	}
	reset := w.start.Add(l.period).Sub(now)

	if w.count >= l.limit {
		return false, 0, reset
	}
	w.count++
	return true, l.limit - w.count, reset
}

// sweep drops expired windows at most once per period. Caller holds mu.
func (l *LoginLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.period {
		return
	}
	for k, w := range l.windows {
		if !now.Before(w.start.Add(l.period)) {
			delete(l.windows, k)
		}
	}
	l.lastSweep = now
}

func (l *LoginLimiter) retryMessage() string {
	minutes := int(math.Ceil(l.period.Minutes()))
	unit := "minutes"
	if minutes == 1 {
		unit = "minute"
	}
	return fmt.Sprintf("Too many login attempts from this IP, please try again after %d %s", minutes, unit)
}

func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

// Middleware guards a route with the limiter and sets the draft-7
// RateLimit-Policy and RateLimit headers.
func (l *LoginLimiter) Middleware(logger logging.Logger) gin.HandlerFunc {
	policy := fmt.Sprintf("%d;w=%d", l.limit, ceilSeconds(l.period))
	message := l.retryMessage()

	return func(c *gin.Context) {
		key := clientKey(c.Request)
		allowed, remaining, reset := l.Take(key)

		c.Header("RateLimit-Policy", policy)
		c.Header("RateLimit", fmt.Sprintf("limit=%d, remaining=%d, reset=%d", l.limit, remaining, ceilSeconds(reset)))

		if !allowed {
			logger.Warn(c.Request.Context(), "login rate limit exceeded",
				"ip", key,
				"path", c.Request.URL.Path,
				"request_id", c.GetString(requestIDKey),
			)
			c.Header("Retry-After", strconv.Itoa(ceilSeconds(reset)))
			abortWithMessage(c, http.StatusTooManyRequests, message)
			return
		}

		c.Next()
	}
}

// clientKey picks the limiter key: the peer address, then the first
// X-Forwarded-For entry, then X-Real-IP.
func clientKey(r *http.Request) string {
	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
			return host
		}
		return r.RemoteAddr
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	return unknownClientKey
}
