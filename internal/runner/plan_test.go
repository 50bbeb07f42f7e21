package runner

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httplatencies/internal/headers"
)

func TestJitterIsEvenlySpacedBelowWindow(t *testing.T) {
	for _, n := range []int{1, 3, 4, 7, 100, 1000} {
		step := time.Second / time.Duration(n)

		prev := time.Duration(-1)
		for i := range n {
			j := Jitter(i, n, time.Second)
			assert.Greater(t, j, prev, "n=%d i=%d", n, i)
			assert.Equal(t, time.Duration(i)*step, j)
			prev = j
		}

		assert.Less(t, Jitter(n-1, n, time.Second), time.Second)
	}

	assert.Zero(t, Jitter(3, 0, time.Second))
}

func TestPlanRoundRobin(t *testing.T) {
	clients := []*http.Client{{}, {}}
	urls := []string{"http://a/", "http://b/", "http://c/"}
	specs := []headers.Spec{{Name: "X-Token", Values: []string{"t0", "t1", "t2", "t3"}}}

	plan := Plan(6, urls, clients, headers.NewCycler(specs), time.Second)
	require.Len(t, plan, 6)

	for i, a := range plan {
		assert.Equal(t, i, a.Index)
		assert.Equal(t, urls[i%3], a.URL)
		assert.Same(t, clients[i%2], a.Client)
		assert.Equal(t, specs[0].Values[i%4], a.Header.Get("X-Token"))
		assert.Equal(t, Jitter(i, 6, time.Second), a.Jitter)
	}
}

func TestPlanStopsWhenCombinationsRunOut(t *testing.T) {
	specs := []headers.Spec{{Name: "X-Empty"}}

	plan := Plan(5, []string{"http://a/"}, []*http.Client{{}}, headers.NewCycler(specs), time.Second)
	assert.Empty(t, plan)
}

func TestQueueSize(t *testing.T) {
	assert.Equal(t, 100, QueueSize(100, 10))
	assert.Equal(t, 300, QueueSize(100, 21))
	assert.Equal(t, MaxQueuedBatches, QueueSize(100000, 100))
	assert.Equal(t, 1, QueueSize(0, 10))
}
