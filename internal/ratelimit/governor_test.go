package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock provides a controllable time source for governor tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestGovernor(perMinute, perHour int) (*Governor, *fakeClock) {
	clock := newFakeClock()
	g := New(perMinute, perHour)
	g.now = clock.Now
	return g, clock
}

func TestAllowWithinQuota(t *testing.T) {
	g, _ := newTestGovernor(3, 10)

	for i := 0; i < 3; i++ {
		d := g.Allow("client-a")
		require.True(t, d.Allowed, "request %d should be admitted", i+1)
		require.Zero(t, d.RetryAfter)
	}
}

func TestRejectOverMinuteQuota(t *testing.T) {
	g, _ := newTestGovernor(2, 100)

	require.True(t, g.Allow("c").Allowed)
	require.True(t, g.Allow("c").Allowed)

	d := g.Allow("c")
	require.False(t, d.Allowed)
	require.Greater(t, d.RetryAfter, time.Duration(0))
	require.LessOrEqual(t, d.RetryAfter, time.Minute)
}

func TestRejectionDoesNotConsumeQuota(t *testing.T) {
	g, clock := newTestGovernor(1, 2)

	require.True(t, g.Allow("c").Allowed)
	// Burn rejections; the hour counter must not move.
	for i := 0; i < 5; i++ {
		require.False(t, g.Allow("c").Allowed)
	}

	// After the minute window resets, one more admit fits under the
	// hour quota of 2. If rejections had counted, this would fail.
	clock.Advance(time.Minute)
	require.True(t, g.Allow("c").Allowed)

	clock.Advance(time.Minute)
	d := g.Allow("c")
	require.False(t, d.Allowed, "hour quota of 2 is now exhausted")
}

func TestMinuteWindowReset(t *testing.T) {
	g, clock := newTestGovernor(2, 100)

	require.True(t, g.Allow("c").Allowed)
	require.True(t, g.Allow("c").Allowed)
	require.False(t, g.Allow("c").Allowed)

	clock.Advance(59 * time.Second)
	require.False(t, g.Allow("c").Allowed, "window has not rolled over yet")

	clock.Advance(time.Second)
	require.True(t, g.Allow("c").Allowed, "fresh minute window")
}

func TestHourWindowGovernsAcrossMinutes(t *testing.T) {
	g, clock := newTestGovernor(10, 3)

	require.True(t, g.Allow("c").Allowed)
	require.True(t, g.Allow("c").Allowed)
	require.True(t, g.Allow("c").Allowed)

	clock.Advance(2 * time.Minute)
	d := g.Allow("c")
	require.False(t, d.Allowed, "hour quota exhausted even in a fresh minute")
	// Nearest reset is the hour window, 58 minutes away.
	require.Greater(t, d.RetryAfter, 57*time.Minute)
	require.LessOrEqual(t, d.RetryAfter, 58*time.Minute)
}

func TestRetryAfterPrefersNearestReset(t *testing.T) {
	g, clock := newTestGovernor(1, 100)

	require.True(t, g.Allow("c").Allowed)
	clock.Advance(45 * time.Second)

	d := g.Allow("c")
	require.False(t, d.Allowed)
	require.Equal(t, 15*time.Second, d.RetryAfter)
}

func TestIdentitiesAreIndependent(t *testing.T) {
	g, _ := newTestGovernor(1, 10)

	require.True(t, g.Allow("a").Allowed)
	require.False(t, g.Allow("a").Allowed)
	require.True(t, g.Allow("b").Allowed, "b has its own counters")
}

func TestConcurrentAdmissionsBounded(t *testing.T) {
	const quota = 50
	const workers = 20
	const perWorker = 10

	g, _ := newTestGovernor(quota, quota*10)

	var admitted int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				if g.Allow("shared").Allowed {
					atomic.AddInt64(&admitted, 1)
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(quota), admitted)
}

func TestPruneDropsIdleEntries(t *testing.T) {
	g, clock := newTestGovernor(10, 100)

	g.Allow("old")
	clock.Advance(3 * time.Hour)
	g.Allow("fresh")

	removed := g.Prune(2 * time.Hour)
	require.Equal(t, 1, removed)
	require.Equal(t, 1, g.Size())
}

func TestPruneKeepsLiveHourWindows(t *testing.T) {
	g, clock := newTestGovernor(10, 100)

	g.Allow("busy")
	clock.Advance(30 * time.Minute)

	removed := g.Prune(10 * time.Minute)
	require.Equal(t, 0, removed, "hour window still live, counters must survive")
}
