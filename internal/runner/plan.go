package runner

import (
	"net/http"
	"time"

	"httplatencies/internal/headers"
	"httplatencies/internal/pool"
)

// Jitter is the start offset of worker i out of n inside window:
// i * (window / n).
func Jitter(i, n int, window time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}

	return time.Duration(i) * (window / time.Duration(n))
}

// Plan assigns URLs and clients round-robin and hands worker i the i-th
// header combination. Fewer than taskCount assignments are returned only when
// the header combinations run out, which happens when a value file is empty.
func Plan(taskCount int, urls []string, clients []*http.Client, combos *headers.Cycler, window time.Duration) []Assignment {
	out := make([]Assignment, 0, taskCount)

	for i := range taskCount {
		h, ok := combos.Next()
		if !ok {
			break
		}

		out = append(out, Assignment{
			Index:  i,
			URL:    pool.Pick(urls, i),
			Client: pool.Pick(clients, i),
			Header: h,
			Jitter: Jitter(i, taskCount, window),
		})
	}

	return out
}

// QueueSize is the batch channel capacity for a run: one slot per batch the
// run can produce, capped at MaxQueuedBatches.
func QueueSize(workers, probes int) int {
	perWorker := (probes + BatchSize - 1) / BatchSize

	return max(1, min(workers*perWorker, MaxQueuedBatches))
}
