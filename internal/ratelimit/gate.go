// Package ratelimit paces outbound requests from server quota feedback.
// A shared not-before deadline gates dispatch; responses move the deadline
// forward, either to the server-announced reset instant or by a fixed
// fallback cadence when the server sends no quota headers.
package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrQueueFull signals that admission control rejected a caller before any
// waiting or network activity. Distinct from server-side errors so callers
// can apply backoff to exactly this case.
var ErrQueueFull = errors.New("rate limit queue full")

// fallbackDelay is the pacing imposed after a response without quota
// headers: one request per second.
const fallbackDelay = time.Second

// Gate is the shared dispatch gate. Waiters pass one at a time; the
// deadline is read and re-checked under the gate so two callers can never
// compute wait targets that both undershoot the true reset time.
type Gate struct {
	sem *semaphore.Weighted // nil: unbounded admission

	gateMu sync.Mutex // serializes waiters

	mu        sync.Mutex // guards notBefore
	notBefore time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGate creates a gate. maxQueue bounds the number of concurrently
// admitted callers; zero or negative means unbounded.
func NewGate(maxQueue int) *Gate {
	g := &Gate{now: time.Now, sleep: sleepCtx}
	if maxQueue > 0 {
		g.sem = semaphore.NewWeighted(int64(maxQueue))
	}
	return g
}

// Acquire admits the caller and blocks until the shared deadline has
// passed. It returns a release func the caller must invoke once its
// request cycle is over, or ErrQueueFull immediately when the admission
// cap is exceeded.
func (g *Gate) Acquire(ctx context.Context) (func(), error) {
	release := func() {}
	if g.sem != nil {
		if !g.sem.TryAcquire(1) {
			return nil, ErrQueueFull
		}
		release = func() { g.sem.Release(1) }
	}

	g.gateMu.Lock()
	defer g.gateMu.Unlock()

	for {
		g.mu.Lock()
		d := g.notBefore.Sub(g.now())
		g.mu.Unlock()
		if d <= 0 {
			return release, nil
		}
		if err := g.sleep(ctx, d); err != nil {
			release()
			return nil, err
		}
	}
}

// Observe feeds response quota headers back into the gate. remaining and
// reset are the raw header values; reset is Unix seconds. An absent
// remaining header imposes the fallback cadence; a zero remaining with a
// strictly-future reset moves the deadline to that instant.
func (g *Gate) Observe(remaining, reset string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if remaining == "" {
		g.notBefore = g.now().Add(fallbackDelay)
		return
	}
	if remaining != "0" {
		return
	}
	secs, err := strconv.ParseInt(reset, 10, 64)
	if err != nil {
		return
	}
	at := time.Unix(secs, 0)
	if at.After(g.now()) {
		g.notBefore = at
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
