package application

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingTicker struct {
	ticks atomic.Int64
}

func (c *countingTicker) Tick(context.Context) { c.ticks.Add(1) }

func TestReconcilerRunsBothLoops(t *testing.T) {
	events := &countingTicker{}
	contests := &countingTicker{}
	r := NewReconciler(events, contests, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	r.Run(ctx)

	assert.Eventually(t, func() bool {
		return events.ticks.Load() >= 2 && contests.ticks.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(30 * time.Millisecond)
	stoppedEvents := events.ticks.Load()
	stoppedContests := contests.ticks.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stoppedEvents, events.ticks.Load())
	assert.Equal(t, stoppedContests, contests.ticks.Load())
}
