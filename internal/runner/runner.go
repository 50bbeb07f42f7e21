// Package runner is the probing engine: it plans worker assignments, starts
// the workers behind a shared barrier, and folds their batches into a
// histogram on a single aggregator goroutine.
package runner

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"httplatencies/internal/config"
	"httplatencies/internal/headers"
	"httplatencies/internal/pool"
	"httplatencies/internal/stats"
)

type Runner struct {
	Cfg         *config.Config
	Assignments []Assignment

	clients []*http.Client
	metrics *stats.Metrics
	logger  *slog.Logger
}

type Option func(*Runner)

// WithClients replaces the client pool built from the configuration.
func WithClients(clients []*http.Client) Option {
	return func(r *Runner) {
		r.clients = clients
	}
}

func WithMetrics(m *stats.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// New loads the header value files, builds the client pool and plans every
// worker. Any error here is a setup failure and nothing has been sent yet.
func New(cfg *config.Config, opts ...Option) (*Runner, error) {
	r := &Runner{Cfg: cfg, logger: slog.Default()}

	for _, opt := range opts {
		opt(r)
	}

	specs, err := headers.LoadAll(cfg.HeaderFiles)
	if err != nil {
		return nil, err
	}

	for _, spec := range specs {
		r.logger.Info("header values loaded", "header", spec.Name, "values", len(spec.Values))
	}

	if len(r.clients) == 0 {
		r.clients, err = pool.NewClients(cfg.Clients, cfg.LocalAddrs, cfg.Timeout)
		if err != nil {
			return nil, err
		}
	}

	r.Assignments = Plan(cfg.TaskCount, cfg.URLs, r.clients, headers.NewCycler(specs), cfg.JitterWindow)
	if len(r.Assignments) < cfg.TaskCount {
		r.logger.Warn("header combinations exhausted, fewer workers scheduled",
			"requested", cfg.TaskCount, "scheduled", len(r.Assignments))
	}

	r.logger.Info("run planned",
		"workers", len(r.Assignments), "clients", len(r.clients), "urls", len(cfg.URLs), "probes", cfg.ProbeCount)

	return r, nil
}

// Run starts every worker and blocks until all of them are done and the
// aggregator has drained their batches.
func (r *Runner) Run(ctx context.Context, observer Observer) Result {
	batches := make(chan Batch, QueueSize(len(r.Assignments), r.Cfg.ProbeCount))
	barrier := NewBarrier(len(r.Assignments))

	// Workers report failures as outcomes, so the group never sees an error
	// and one worker never cancels another.
	var g errgroup.Group

	started := time.Now()

	for _, a := range r.Assignments {
		task := &Task{
			Assignment: a,
			Probes:     r.Cfg.ProbeCount,
			Interval:   r.Cfg.Interval,
			Logger:     r.logger,
		}

		g.Go(func() error {
			task.Run(ctx, barrier, batches)

			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(batches)
	}()

	res := NewAggregator(r.Cfg.ExpectedSamples(), observer, r.metrics, r.logger).Consume(batches)

	r.logger.Info("run finished",
		"elapsed", time.Since(started).Round(time.Millisecond),
		"successes", res.Successes, "protocol_errors", res.ProtocolErrors, "transport_errors", res.TransportErrors)

	return res
}
