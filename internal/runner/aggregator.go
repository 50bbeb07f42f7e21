package runner

import (
	"log/slog"

	errs "httplatencies/internal/errors"
	"httplatencies/internal/stats"
)

// ProgressEvery is the success count step at which progress is repainted.
const ProgressEvery = 100

// Result is what the aggregator hands back once its input is closed.
type Result struct {
	Histogram       *stats.Histogram
	Expected        int
	Successes       int
	ProtocolErrors  int
	TransportErrors int
	// PerTask counts every outcome received, keyed by task index.
	PerTask map[int]int
}

// Outcomes is the total number of outcomes received.
func (r Result) Outcomes() int {
	return r.Successes + r.ProtocolErrors + r.TransportErrors
}

// Errors is the number of failed probes of either kind.
func (r Result) Errors() int {
	return r.ProtocolErrors + r.TransportErrors
}

// Aggregator is the single consumer of all worker batches. It owns the
// histogram outright, so nothing in here needs a lock.
type Aggregator struct {
	observer Observer
	metrics  *stats.Metrics
	logger   *slog.Logger
	result   Result
}

func NewAggregator(expected int, observer Observer, metrics *stats.Metrics, logger *slog.Logger) *Aggregator {
	if observer == nil {
		observer = nopObserver{}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Aggregator{
		observer: observer,
		metrics:  metrics,
		logger:   logger,
		result: Result{
			Histogram: stats.NewHistogram(),
			Expected:  expected,
			PerTask:   make(map[int]int),
		},
	}
}

// Consume drains batches until the channel is closed and returns the totals.
func (a *Aggregator) Consume(batches <-chan Batch) Result {
	a.observer.Progress(0, a.result.Expected)

	for batch := range batches {
		for _, outcome := range batch.Outcomes {
			a.fold(batch.Task, outcome)
		}
	}

	a.observer.Progress(a.result.Successes, a.result.Expected)

	return a.result
}

func (a *Aggregator) fold(task int, outcome Outcome) {
	a.result.PerTask[task]++

	if outcome.Err != nil {
		if errs.IsTransport(outcome.Err) {
			a.result.TransportErrors++
			a.metrics.ObserveFailure(stats.OutcomeTransport)
		} else {
			a.result.ProtocolErrors++
			a.metrics.ObserveFailure(stats.OutcomeProtocol)
		}

		a.observer.ProbeError(task, outcome.Err)

		return
	}

	if err := a.result.Histogram.Record(outcome.Latency); err != nil {
		a.logger.Warn("latency not recorded", "task", task, "latency", outcome.Latency, "error", err)

		return
	}

	a.result.Successes++
	a.metrics.ObserveSuccess(outcome.Latency)

	if a.result.Successes%ProgressEvery == 0 {
		a.observer.Progress(a.result.Successes, a.result.Expected)
	}
}
