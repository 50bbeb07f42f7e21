package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBarrierReleasesAllTogether(t *testing.T) {
	const n = 8

	b := NewBarrier(n)

	var arrived atomic.Int32
	var wg sync.WaitGroup

	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(time.Duration(i) * 5 * time.Millisecond)
			arrived.Add(1)
			assert.NoError(t, b.Wait(context.Background()))
			assert.Equal(t, int32(n), arrived.Load())
		}()
	}

	wg.Wait()
}

func TestBarrierHonoursContext(t *testing.T) {
	b := NewBarrier(2)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, b.Wait(ctx), context.DeadlineExceeded)

	// the late party is released immediately
	assert.NoError(t, b.Wait(context.Background()))
}
