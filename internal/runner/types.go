package runner

import (
	"net/http"
	"time"
)

const (
	// BatchSize is the number of outcomes a worker collects before flushing.
	BatchSize = 10

	// MaxQueuedBatches caps the batch channel buffer. Below the cap a send
	// never blocks.
	MaxQueuedBatches = 4096
)

// Assignment is everything a worker needs, resolved once before it starts.
type Assignment struct {
	Index  int
	URL    string
	Client *http.Client
	Header http.Header
	Jitter time.Duration
}

// Outcome is the result of one probe: a latency when Err is nil, otherwise
// an *errors.ProtocolError or *errors.TransportError.
type Outcome struct {
	Latency time.Duration
	Err     error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

// Batch carries up to BatchSize outcomes of one worker, in probe order.
type Batch struct {
	Task     int
	Outcomes []Outcome
}

// Observer receives the aggregator's user-facing events. It is only ever
// called from the aggregator goroutine.
type Observer interface {
	Progress(completed, expected int)
	ProbeError(task int, err error)
}

type nopObserver struct{}

func (nopObserver) Progress(int, int)     {}
func (nopObserver) ProbeError(int, error) {}
