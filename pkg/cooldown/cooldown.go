// Package cooldown provides per-key rate limiting with automatic
// cleanup of idle keys. A Gate hands out one token per interval and
// key, which makes it suitable for per-user command throttling.
//
// Example usage:
//
//	gate := cooldown.NewGate(3*time.Second, 1)
//	defer gate.Close()
//
//	if gate.Allow(userID) {
//	    handle(userID)
//	}
package cooldown

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Gate tracks one token bucket per key. Thread-safe. Idle keys are
// swept in the background so the map does not grow with every key
// ever seen.
type Gate struct {
	mu        sync.Mutex
	entries   map[string]*entry
	interval  time.Duration
	burst     int
	idleAfter time.Duration
	done      chan struct{}
	closeOnce sync.Once
}

// NewGate creates a Gate that refills one token per interval with the
// given burst. Burst values below 1 are raised to 1.
func NewGate(interval time.Duration, burst int) *Gate {
	if burst < 1 {
		burst = 1
	}
	idleAfter := 10 * interval
	if idleAfter < time.Minute {
		idleAfter = time.Minute
	}
	g := &Gate{
		entries:   make(map[string]*entry),
		interval:  interval,
		burst:     burst,
		idleAfter: idleAfter,
		done:      make(chan struct{}),
	}
	go g.sweep()
	return g
}

// Allow reports whether the key may act now, consuming a token when it
// may.
func (g *Gate) Allow(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Every(g.interval), g.burst)}
		g.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

// Close stops the background sweeper.
func (g *Gate) Close() {
	g.closeOnce.Do(func() { close(g.done) })
}

func (g *Gate) sweep() {
	tick := time.NewTicker(time.Minute)
	defer tick.Stop()
	for {
		select {
		case <-g.done:
			return
		case <-tick.C:
			cutoff := time.Now().Add(-g.idleAfter)
			g.mu.Lock()
			for key, e := range g.entries {
				if e.lastSeen.Before(cutoff) {
					delete(g.entries, key)
				}
			}
			g.mu.Unlock()
		}
	}
}
