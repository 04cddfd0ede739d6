// Package guard bounds concurrent analysis load: a reentrancy guard with a
// minimum start interval and a maximum nesting depth. Authoritative
// final-score calls must bypass the guard entirely; that decision belongs to
// the caller.
package guard

import (
	"sync"
	"time"
)

// Defaults for the guard limits.
const (
	DefaultMinInterval = 500 * time.Millisecond
	DefaultMaxDepth    = 3
)

// Guard is the process-wide throttle for non-final analysis calls. All state
// is owned by the Guard; release happens through the function returned by
// TryAcquire so every exit path can hold the release discipline with a single
// defer.
type Guard struct {
	mu          sync.Mutex
	minInterval time.Duration
	maxDepth    int

	depth      int
	inProgress int
	lastStart  time.Time

	now func() time.Time
}

// New creates a guard. Non-positive arguments fall back to the defaults.
func New(minInterval time.Duration, maxDepth int) *Guard {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Guard{
		minInterval: minInterval,
		maxDepth:    maxDepth,
		now:         time.Now,
	}
}

// TryAcquire attempts to enter an analysis. On success it returns a release
// function (safe to call more than once) and true. On rejection it returns
// nil and false:
//   - depth exceeded: the depth counter resets, protecting against runaway
//     recursive analysis chains;
//   - another analysis started within the minimum interval and is still in
//     progress.
func (g *Guard) TryAcquire() (func(), bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.depth+1 > g.maxDepth {
		g.depth = 0
		return nil, false
	}
	if g.inProgress > 0 && g.now().Sub(g.lastStart) < g.minInterval {
		return nil, false
	}

	g.depth++
	g.inProgress++
	g.lastStart = g.now()

	var once sync.Once
	release := func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			if g.depth > 0 {
				g.depth--
			}
			if g.inProgress > 0 {
				g.inProgress--
			}
		})
	}
	return release, true
}

// SetClock overrides the time source, for tests.
func (g *Guard) SetClock(now func() time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.now = now
}
