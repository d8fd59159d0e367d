package mid

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	v1 "github.com/journal-labs/journalchain/business/web/v1"
	"github.com/journal-labs/journalchain/foundation/web"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a client exceeds its submission budget.
var ErrRateLimited = errors.New("too many requests")

// maxLimiters caps the number of tracked hosts. When the cap is reached
// the map is rebuilt, which resets outstanding budgets but keeps the
// memory held by the middleware bounded.
const maxLimiters = 10_000

// RateLimit applies a token bucket per remote host. It protects the
// transaction submission endpoints from a single client flooding the pool.
func RateLimit(rps float64, burst int) web.Middleware {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(host string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		l, exists := limiters[host]
		if !exists {
			if len(limiters) >= maxLimiters {
				limiters = make(map[string]*rate.Limiter)
			}
			l = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[host] = l
		}
		return l
	}

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !limiterFor(host).Allow() {
				return v1.NewRequestError(ErrRateLimited, http.StatusTooManyRequests)
			}

			// Call the next handler.
			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
