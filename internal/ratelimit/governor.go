// Package ratelimit implements the dual fixed-window rate governor that
// gates every tool invocation before upstream dispatch. Each client
// identity gets an independent pair of counters: one per-minute window
// and one per-hour window. A request is admitted only when both windows
// have remaining quota, and admission increments both counters; a
// rejected request increments neither.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	minuteWindow = time.Minute
	hourWindow   = time.Hour
)

// Decision is the outcome of a single admission check.
type Decision struct {
	// Allowed reports whether the request may proceed upstream.
	Allowed bool

	// RetryAfter is the time until the nearest exhausted window resets.
	// Zero when Allowed is true.
	RetryAfter time.Duration
}

// window tracks request count within a fixed interval.
type window struct {
	count int
	start time.Time
}

// expired reports whether the window has rolled over at instant now.
func (w *window) expired(now time.Time, length time.Duration) bool {
	return now.Sub(w.start) >= length
}

// reset starts a fresh window at instant now.
func (w *window) reset(now time.Time) {
	w.count = 0
	w.start = now
}

// resetAt returns the instant the window rolls over.
func (w *window) resetAt(length time.Duration) time.Time {
	return w.start.Add(length)
}

// entry holds the per-identity counters. Each entry has its own lock so
// contention on one identity never blocks another.
type entry struct {
	mu       sync.Mutex
	minute   window
	hour     window
	lastSeen time.Time
}

// Governor enforces per-identity dual-window quotas.
type Governor struct {
	mu      sync.Mutex
	entries map[string]*entry

	perMinute int
	perHour   int

	// now is injectable for tests.
	now func() time.Time
}

// New returns a governor enforcing the given per-minute and per-hour quotas.
func New(perMinute, perHour int) *Governor {
	return &Governor{
		entries:   make(map[string]*entry),
		perMinute: perMinute,
		perHour:   perHour,
		now:       time.Now,
	}
}

// Allow performs one admission check for the given client identity.
// Both counters increment if and only if the request is admitted.
func (g *Governor) Allow(identity string) Decision {
	now := g.now()
	e := g.entryFor(identity, now)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastSeen = now

	if e.minute.expired(now, minuteWindow) {
		e.minute.reset(now)
	}
	if e.hour.expired(now, hourWindow) {
		e.hour.reset(now)
	}

	minuteExhausted := e.minute.count >= g.perMinute
	hourExhausted := e.hour.count >= g.perHour

	if minuteExhausted || hourExhausted {
		return Decision{Allowed: false, RetryAfter: g.retryAfter(e, now, minuteExhausted, hourExhausted)}
	}

	e.minute.count++
	e.hour.count++
	return Decision{Allowed: true}
}

// retryAfter computes the time until the nearest exhausted window resets.
// Caller holds e.mu.
func (g *Governor) retryAfter(e *entry, now time.Time, minuteExhausted, hourExhausted bool) time.Duration {
	var soonest time.Time
	if minuteExhausted {
		soonest = e.minute.resetAt(minuteWindow)
	}
	if hourExhausted {
		hourReset := e.hour.resetAt(hourWindow)
		if soonest.IsZero() || hourReset.Before(soonest) {
			soonest = hourReset
		}
	}

	wait := soonest.Sub(now)
	if wait <= 0 {
		// Window rolled over between the expiry check and here; the caller
		// should simply retry immediately.
		return time.Second
	}
	return wait
}

// entryFor returns the entry for identity, creating it if needed.
func (g *Governor) entryFor(identity string, now time.Time) *entry {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[identity]
	if !ok {
		e = &entry{
			minute:   window{start: now},
			hour:     window{start: now},
			lastSeen: now,
		}
		g.entries[identity] = e
	}
	return e
}

// Prune drops entries idle longer than staleFor. Identities whose hour
// window is still live are kept regardless of idle time so counters
// survive quiet periods.
func (g *Governor) Prune(staleFor time.Duration) int {
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	removed := 0
	for identity, e := range g.entries {
		e.mu.Lock()
		idle := now.Sub(e.lastSeen)
		hourLive := !e.hour.expired(now, hourWindow) && e.hour.count > 0
		e.mu.Unlock()

		if idle >= staleFor && !hourLive {
			delete(g.entries, identity)
			removed++
		}
	}
	return removed
}

// StartPruning runs Prune on the given interval until ctx is cancelled.
func (g *Governor) StartPruning(ctx context.Context, interval, staleFor time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				g.Prune(staleFor)
			}
		}
	}()
}

// Size returns the number of tracked identities.
func (g *Governor) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
