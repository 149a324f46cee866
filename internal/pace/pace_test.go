package pace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroIntervalIsNoOp(t *testing.T) {
	p := New(0)

	start := time.Now()
	for range 100 {
		require.NoError(t, p.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestNilPacerIsNoOp(t *testing.T) {
	var p *Pacer
	require.NoError(t, p.Wait(context.Background()))
}

func TestIntervalEnforced(t *testing.T) {
	p := New(30 * time.Millisecond)

	start := time.Now()
	for range 3 {
		require.NoError(t, p.Wait(context.Background()))
	}
	// First call is immediate, the next two wait one interval each.
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestWaitHonorsContextCancel(t *testing.T) {
	p := New(time.Hour)
	require.NoError(t, p.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, p.Wait(ctx))
}
