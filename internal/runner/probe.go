package runner

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	errs "httplatencies/internal/errors"
)

// maxErrorBody bounds how much of a non-2xx body is kept in a ProtocolError.
const maxErrorBody = 64 << 10

// State is a worker's lifecycle phase.
type State int

const (
	WaitingAtBarrier State = iota
	Jittering
	Probing
	Draining
	Terminated
)

func (s State) String() string {
	switch s {
	case WaitingAtBarrier:
		return "waiting_at_barrier"
	case Jittering:
		return "jittering"
	case Probing:
		return "probing"
	case Draining:
		return "draining"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Task is one probe worker.
type Task struct {
	Assignment

	Probes   int
	Interval time.Duration
	Logger   *slog.Logger

	state State
}

// State returns the phase the worker last entered. Only read it after Run
// has returned.
func (t *Task) State() State {
	return t.state
}

func (t *Task) enter(s State, attrs ...any) {
	t.state = s
	if t.Logger != nil {
		t.Logger.Debug("worker state", append([]any{"task", t.Index, "state", s.String()}, attrs...)...)
	}
}

// Run waits at the barrier, sleeps its jitter, then issues up to t.Probes
// paced GET requests and streams the outcomes to out in batches. A transport
// failure ends the loop early; a non-2xx status does not. Cancelling ctx
// stops the worker at its next suspension point. Run never closes out.
func (t *Task) Run(ctx context.Context, barrier *Barrier, out chan<- Batch) {
	t.enter(WaitingAtBarrier)
	if err := barrier.Wait(ctx); err != nil {
		t.enter(Terminated, "reason", err)
		return
	}

	t.enter(Jittering, "jitter", t.Jitter)
	if !sleep(ctx, t.Jitter) {
		t.enter(Terminated, "reason", ctx.Err())
		return
	}

	batch := make([]Outcome, 0, BatchSize)

	for i := 0; i < t.Probes; i++ {
		t.enter(Probing, "iteration", i)

		outcome := t.probe(ctx)
		if outcome.Err != nil && ctx.Err() != nil {
			// interrupted, not a failure of the target
			break
		}

		batch = append(batch, outcome)

		if len(batch) == BatchSize {
			out <- Batch{Task: t.Index, Outcomes: batch}
			batch = make([]Outcome, 0, BatchSize)
		}

		if errs.IsTransport(outcome.Err) {
			break
		}

		if i < t.Probes-1 && !sleep(ctx, t.Interval) {
			break
		}
	}

	t.enter(Draining, "pending", len(batch))
	if len(batch) > 0 {
		out <- Batch{Task: t.Index, Outcomes: batch}
	}

	t.enter(Terminated)
}

func (t *Task) probe(ctx context.Context) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.URL, nil)
	if err != nil {
		return Outcome{Err: &errs.TransportError{Err: err}}
	}

	if t.Header != nil {
		req.Header = t.Header.Clone()
	}
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
	}

	start := time.Now()

	resp, err := t.Client.Do(req)
	if err != nil {
		return Outcome{Err: &errs.TransportError{Err: err}}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		elapsed := time.Since(start)
		_, _ = io.Copy(io.Discard, resp.Body)

		return Outcome{Latency: elapsed}
	}

	var body strings.Builder
	_, _ = io.Copy(&body, io.LimitReader(resp.Body, maxErrorBody))

	return Outcome{Err: &errs.ProtocolError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body.String(),
	}}
}

// sleep waits for d or until ctx is done, reporting whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
