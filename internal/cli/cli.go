// Package cli is the headless front end: it prints the run header, the
// progress line, one line per failed probe and the final summary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"httplatencies/internal/config"
	errs "httplatencies/internal/errors"
	"httplatencies/internal/runner"
	"httplatencies/internal/stats"
)

// Terminal implements runner.Observer on a plain writer.
type Terminal struct {
	out io.Writer
	// inPlace repaints the progress line with \r instead of appending lines.
	inPlace bool
	painted bool
}

func NewTerminal(out io.Writer, inPlace bool) *Terminal {
	return &Terminal{out: out, inPlace: inPlace}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (t *Terminal) Progress(completed, expected int) {
	if t.inPlace {
		fmt.Fprintf(t.out, "\r\x1b[K%d/%d", completed, expected)
		t.painted = true

		return
	}

	fmt.Fprintf(t.out, "%d/%d\n", completed, expected)
}

func (t *Terminal) ProbeError(task int, err error) {
	t.clearLine()
	fmt.Fprintf(t.out, "%d ERROR %v\n\n", task, err)
}

// Finish ends the in-place progress line.
func (t *Terminal) Finish() {
	if t.painted {
		fmt.Fprintln(t.out)
		t.painted = false
	}
}

func (t *Terminal) clearLine() {
	if t.painted {
		fmt.Fprint(t.out, "\r\x1b[K")
		t.painted = false
	}
}

// Start runs r with a Terminal observer on out.
func Start(ctx context.Context, r *runner.Runner, out io.Writer, inPlace bool) runner.Result {
	printHeader(out, r.Cfg, len(r.Assignments))

	term := NewTerminal(out, inPlace)
	res := r.Run(ctx, term)
	term.Finish()

	return res
}

func printHeader(out io.Writer, cfg *config.Config, workers int) {
	fmt.Fprintf(out, "Targets    : %s\n", strings.Join(cfg.URLs, ", "))
	if len(cfg.LocalAddrs) > 0 {
		fmt.Fprintf(out, "Local IPs  : %s\n", strings.Join(cfg.LocalAddrs, ", "))
	}
	fmt.Fprintf(out, "Tasks      : %d (%d scheduled) x %d probes every %s\n", cfg.TaskCount, workers, cfg.ProbeCount, cfg.Interval)
	fmt.Fprintf(out, "Timeout    : %s\n\n", cfg.Timeout)
}

// PrintSummary writes the final summary line, or the no-data notice. It
// returns any error other than errs.ErrNoData.
func PrintSummary(out io.Writer, res runner.Result, summary stats.Summary, err error) error {
	if errors.Is(err, errs.ErrNoData) {
		fmt.Fprintf(out, "%v (%d protocol errors, %d transport errors)\n", err, res.ProtocolErrors, res.TransportErrors)

		return nil
	}

	if err != nil {
		return err
	}

	fmt.Fprintln(out, summary.String())

	return nil
}
