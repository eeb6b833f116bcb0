package refresher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ewastewatch/internal/domain"
)

type counter struct {
	n    atomic.Int32
	fail bool
}

func (c *counter) Recompute(context.Context) ([]domain.Hotspot, error) {
	c.n.Add(1)
	if c.fail {
		return nil, errors.New("db down")
	}
	return nil, nil
}

func TestRunTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	clock := clockwork.NewFakeClock()
	c := &counter{fail: true}

	done := make(chan struct{})
	go func() {
		Run(ctx, clock, c, time.Minute)
		close(done)
	}()

	wctx, wcancel := context.WithTimeout(ctx, 2*time.Second)
	defer wcancel()
	require.NoError(t, clock.BlockUntilContext(wctx, 1))
	assert.EqualValues(t, 1, c.n.Load(), "initial refresh runs before the first tick")

	clock.Advance(time.Minute)
	require.Eventually(t, func() bool { return c.n.Load() == 2 }, time.Second, time.Millisecond)
	clock.Advance(time.Minute)
	require.Eventually(t, func() bool { return c.n.Load() == 3 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestRunDisabled(t *testing.T) {
	c := &counter{}
	Run(context.Background(), clockwork.NewFakeClock(), c, 0)
	assert.Zero(t, c.n.Load())
}
