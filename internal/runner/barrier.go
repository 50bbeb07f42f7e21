package runner

import (
	"context"
	"sync"
)

// Barrier releases its waiters once all n parties have arrived. It is single
// use.
type Barrier struct {
	arrived sync.WaitGroup
}

func NewBarrier(n int) *Barrier {
	b := &Barrier{}
	b.arrived.Add(n)

	return b
}

// Wait marks the caller as arrived and blocks until every party has arrived
// or ctx is done. Each party must call Wait exactly once.
func (b *Barrier) Wait(ctx context.Context) error {
	b.arrived.Done()

	released := make(chan struct{})
	go func() {
		b.arrived.Wait()
		close(released)
	}()

	select {
	case <-released:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
