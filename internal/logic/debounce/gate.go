// Package debounce implements a single refractory window shared by every
// button wired to it.
package debounce

import (
	"sync/atomic"
	"time"
)

// DefaultWindow is the minimum spacing between two accepted edges.
const DefaultWindow = 250 * time.Millisecond

// Clock returns the time elapsed since boot.
type Clock func() time.Duration

// SinceBoot returns a Clock whose zero is the moment it was created.
func SinceBoot() Clock {
	boot := time.Now()
	return func() time.Duration {
		return time.Since(boot)
	}
}

// Gate decides whether an edge is accepted. The window is global: an edge on
// any source closes it for all sources. Gate is safe for concurrent use from
// edge callbacks; it takes no lock.
type Gate struct {
	window time.Duration
	last   atomic.Int64 // last accepted edge, nanoseconds since boot
}

// NewGate creates a gate with the given window. A non-positive window falls
// back to DefaultWindow.
func NewGate(window time.Duration) *Gate {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Gate{window: window}
}

// Window returns the refractory window.
func (g *Gate) Window() time.Duration {
	return g.window
}

// Accept reports whether an edge observed at now (since boot) passes. An edge
// arriving no more than one window after the last accepted edge is discarded.
// The last accepted time starts at zero, so edges during the first window
// after boot are discarded too.
//
// When two callers race inside the same window, exactly one is accepted.
func (g *Gate) Accept(now time.Duration) bool {
	for {
		last := g.last.Load()
		if now-time.Duration(last) <= g.window {
			return false
		}
		if g.last.CompareAndSwap(last, int64(now)) {
			return true
		}
	}
}

// LastAccepted returns the time of the last accepted edge.
func (g *Gate) LastAccepted() time.Duration {
	return time.Duration(g.last.Load())
}
