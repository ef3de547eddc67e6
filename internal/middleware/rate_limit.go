package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/baharkarakas/stocksim/internal/web"
)

// idleBucketTTL is how long a client's bucket survives without requests.
const idleBucketTTL = time.Minute

type tokenBucket struct {
	tokens int
	last   time.Time
	seen   time.Time
	rate   int
	burst  int
}

// allow takes one token, refilling the bucket for the time since the last refill.
func (tb *tokenBucket) allow(now time.Time) bool {
	tb.seen = now
	elapsed := now.Sub(tb.last).Seconds()
	if elapsed > 0 {
		refill := int(elapsed * float64(tb.rate))
		if refill > 0 {
			tb.tokens += refill
			if tb.tokens > tb.burst {
				tb.tokens = tb.burst
			}
			tb.last = now
		}
	}
	if tb.tokens == 0 {
		return false
	}
	tb.tokens--
	return true
}

// limiter holds one bucket per client address.
type limiter struct {
	mu        sync.Mutex
	rps       int
	buckets   map[string]*tokenBucket
	lastPrune time.Time
}

func (l *limiter) allow(client string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastPrune) > idleBucketTTL {
		for k, b := range l.buckets {
			if now.Sub(b.seen) > idleBucketTTL {
				delete(l.buckets, k)
			}
		}
		l.lastPrune = now
	}

	b, ok := l.buckets[client]
	if !ok {
		b = &tokenBucket{tokens: l.rps, last: now, rate: l.rps, burst: l.rps}
		l.buckets[client] = b
	}
	return b.allow(now)
}

// clientAddr is the remote host without its port.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit admits at most rps requests per second from each client address.
func RateLimit(rps int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	l := &limiter{rps: rps, buckets: map[string]*tokenBucket{}, lastPrune: time.Now()}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientAddr(r), time.Now()) {
				web.Apology(w, http.StatusTooManyRequests, "too many requests", LoggedIn(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
