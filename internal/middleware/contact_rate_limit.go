package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/precept-hq/contact-api/internal/models"
	apperrors "github.com/precept-hq/contact-api/pkg/errors"
	"github.com/precept-hq/contact-api/pkg/metrics"
)

const throttleMessage = "Too many contact form submissions, please try again later."

// ContactRateLimiter caps contact submissions per client IP using a fixed
// window counter. The first request from an IP opens a window; the counter
// entry expires with the window, which resets the count. State is
// process-local and lost on restart, which is acceptable for a
// single-instance deployment.
type ContactRateLimiter struct {
	counters *gocache.Cache
	mu       sync.Mutex
	limit    int64
	window   time.Duration
}

// NewContactRateLimiter creates a fixed-window limiter allowing `limit`
// requests per `window` for each client IP.
func NewContactRateLimiter(limit int, window time.Duration) *ContactRateLimiter {
	return &ContactRateLimiter{
		counters: gocache.New(window, window),
		limit:    int64(limit),
		window:   window,
	}
}

// Admit records a request from the given client IP and reports whether it
// falls within the current window's allowance.
func (rl *ContactRateLimiter) Admit(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Add only succeeds when no live entry exists, i.e. a fresh window.
	if err := rl.counters.Add(ip, int64(1), rl.window); err == nil {
		return rl.limit >= 1
	}

	n, err := rl.counters.IncrementInt64(ip, 1)
	if err != nil {
		// Entry expired between Add and Increment; start a new window.
		rl.counters.Set(ip, int64(1), rl.window)
		return rl.limit >= 1
	}
	return n <= rl.limit
}

// Middleware gates the contact route, rejecting over-limit clients with 429.
// Other routes and other client addresses are unaffected.
func (rl *ContactRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Admit(c.ClientIP()) {
			metrics.ContactSubmissions.WithLabelValues("rate_limited").Inc()
			// Attach the typed error so the access log records the rejection.
			_ = c.Error(apperrors.RateLimitedError(c.ClientIP()))
			c.JSON(http.StatusTooManyRequests, models.ContactResponse{
				Success: false,
				Message: throttleMessage,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
