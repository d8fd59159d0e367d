package mid

import (
	"context"
	"net/http"
	"time"

	"github.com/journal-labs/journalchain/foundation/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the prometheus collectors shared by the middleware. The
// collectors are registered once on the default registry which the debug
// endpoint exposes.
var metrics = struct {
	requests prometheus.Counter
	errors   prometheus.Counter
	panics   prometheus.Counter
	latency  prometheus.Histogram
}{
	requests: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "journalchain",
		Name:      "requests_total",
		Help:      "Total number of API requests handled.",
	}),
	errors: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "journalchain",
		Name:      "errors_total",
		Help:      "Total number of API requests that returned an error.",
	}),
	panics: promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "journalchain",
		Name:      "panics_total",
		Help:      "Total number of recovered handler panics.",
	}),
	latency: promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "journalchain",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution of API requests.",
		Buckets:   prometheus.DefBuckets,
	}),
}

// Metrics updates the request counters for each request.
func Metrics() web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			v, err := web.GetValues(ctx)
			if err != nil {
				return web.NewShutdownError("web value missing from context")
			}

			err = handler(ctx, w, r)

			metrics.requests.Inc()
			metrics.latency.Observe(time.Since(v.Now).Seconds())
			if err != nil {
				metrics.errors.Inc()
			}

			return err
		}

		return h
	}

	return m
}
