// Package ratelimit rejects request floods from a single source IP using
// per-source token buckets that are dropped again after a period of
// inactivity.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"gitlab.com/gitlab-org/labkit/log"
	"golang.org/x/time/rate"

	"gitlab.com/svanberg/assetgate/internal/httperrors"
	"gitlab.com/svanberg/assetgate/metrics"
)

const (
	// DefaultCleanupInterval is the time at which cleanup will run
	DefaultCleanupInterval = 30 * time.Second
	// DefaultMaxTimePerSource is the maximum time to keep an idle source
	// in the limiter map
	DefaultMaxTimePerSource = 30 * time.Second
)

type counter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Option function to configure a Limiter
type Option func(*Limiter)

// Limiter holds one token bucket per source IP.
type Limiter struct {
	now              func() time.Time
	cleanupTimer     *time.Ticker
	maxTimePerSource time.Duration
	perSecond        rate.Limit
	burst            int

	mux       sync.Mutex
	perSource map[string]*counter
}

// New creates a Limiter allowing perSecond requests per source with the
// given burst size.
func New(perSecond float64, burst int, opts ...Option) *Limiter {
	l := &Limiter{
		now:              time.Now,
		cleanupTimer:     time.NewTicker(DefaultCleanupInterval),
		maxTimePerSource: DefaultMaxTimePerSource,
		perSecond:        rate.Limit(perSecond),
		burst:            burst,
		perSource:        make(map[string]*counter),
	}

	for _, opt := range opts {
		opt(l)
	}

	go l.cleanup()

	return l
}

// WithNow replaces the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// WithCleanupInterval changes how often idle sources are evicted.
func WithCleanupInterval(d time.Duration) Option {
	return func(l *Limiter) {
		l.cleanupTimer.Reset(d)
	}
}

func (l *Limiter) getSourceCounter(source string) *counter {
	l.mux.Lock()
	defer l.mux.Unlock()

	c, ok := l.perSource[source]
	if !ok {
		c = &counter{
			limiter: rate.NewLimiter(l.perSecond, l.burst),
		}
		l.perSource[source] = c
	}

	c.lastSeen = l.now()
	return c
}

// SourceAllowed reports whether the source IP is still within its request
// budget.
func (l *Limiter) SourceAllowed(source string) bool {
	return l.getSourceCounter(source).limiter.AllowN(l.now(), 1)
}

// Middleware returns a handler rejecting over-limit sources with 429.
func (l *Limiter) Middleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		if !l.SourceAllowed(host) {
			metrics.RateLimitedRequests.Inc()
			httperrors.Serve429(w)
			return
		}

		handler.ServeHTTP(w, r)
	})
}

func (l *Limiter) cleanup() {
	for t := range l.cleanupTimer.C {
		log.WithField("cleanup", t).Debug("cleaning per-source rate limiters")

		l.mux.Lock()
		for source, c := range l.perSource {
			if l.now().Sub(c.lastSeen) > l.maxTimePerSource {
				delete(l.perSource, source)
			}
		}
		l.mux.Unlock()
	}
}
