package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/osa911/formrelay/internal/api/dto/common"
	"github.com/osa911/formrelay/internal/utils"
)

// clientIdleTTL is how long an idle client's bucket is kept.
const clientIdleTTL = 10 * time.Minute

type clientState struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter keeps one token bucket per client IP.
type ClientRateLimiter struct {
	config RateLimitConfig
	now    func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientState
	lastSweep time.Time
}

// NewClientRateLimiter creates a per-client limiter
func NewClientRateLimiter(config RateLimitConfig) *ClientRateLimiter {
	return &ClientRateLimiter{
		config:  config,
		now:     time.Now,
		clients: make(map[string]*clientState),
	}
}

// Allow takes a token from key's bucket. When none is left it reports how
// long until the next one.
func (l *ClientRateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	state, ok := l.clients[key]
	if !ok {
		state = &clientState{limiter: rate.NewLimiter(rate.Limit(l.config.RPS), l.config.Burst)}
		l.clients[key] = state
	}
	state.lastSeen = now

	if state.limiter.AllowN(now, 1) {
		return true, 0
	}
	missing := 1 - state.limiter.TokensAt(now)
	return false, time.Duration(missing / float64(l.config.RPS) * float64(time.Second))
}

// sweep drops idle clients at most once per TTL; callers hold l.mu.
func (l *ClientRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < clientIdleTTL {
		return
	}
	l.lastSweep = now
	for key, state := range l.clients {
		if now.Sub(state.lastSeen) > clientIdleTTL {
			delete(l.clients, key)
		}
	}
}

// Len reports how many clients are tracked.
func (l *ClientRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Middleware limits each client IP separately
func (l *ClientRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, wait := l.Allow(utils.GetRealIP(c))
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.NewErrorResponse(
				common.ErrCodeTooManyRequests,
				"Too many submissions from this address. Please try again later.",
				nil,
			))
			return
		}
		c.Next()
	}
}
