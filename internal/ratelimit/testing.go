package ratelimit

import (
	"context"
	"time"
)

// NewTestGate creates a gate with an injected clock and sleeper so tests
// can drive waiting deterministically.
func NewTestGate(maxQueue int, now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) *Gate {
	g := NewGate(maxQueue)
	if now != nil {
		g.now = now
	}
	if sleep != nil {
		g.sleep = sleep
	}
	return g
}
