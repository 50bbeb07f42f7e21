// Package export writes run results to files: a JSON summary and the latency
// distribution as CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"time"

	"httplatencies/internal/config"
	errs "httplatencies/internal/errors"
	"httplatencies/internal/runner"
	"httplatencies/internal/stats"
)

// Report is the content of <prefix>_summary.json.
type Report struct {
	Timestamp       time.Time      `json:"timestamp"`
	URLs            []string       `json:"urls"`
	LocalAddrs      []string       `json:"local_ips,omitempty"`
	Tasks           int            `json:"tasks"`
	Probes          int            `json:"probes"`
	Expected        int            `json:"expected"`
	Successes       int            `json:"successes"`
	ProtocolErrors  int            `json:"protocol_errors"`
	TransportErrors int            `json:"transport_errors"`
	NoData          bool           `json:"no_data"`
	Summary         *stats.Summary `json:"summary,omitempty"`
}

func NewReport(cfg *config.Config, res runner.Result, summary stats.Summary, summaryErr error) Report {
	rep := Report{
		Timestamp:       time.Now().UTC(),
		URLs:            cfg.URLs,
		LocalAddrs:      cfg.LocalAddrs,
		Tasks:           cfg.TaskCount,
		Probes:          cfg.ProbeCount,
		Expected:        res.Expected,
		Successes:       res.Successes,
		ProtocolErrors:  res.ProtocolErrors,
		TransportErrors: res.TransportErrors,
		NoData:          errors.Is(summaryErr, errs.ErrNoData),
	}

	if summaryErr == nil {
		rep.Summary = &summary
	}

	return rep
}

// Files returns the summary and histogram paths for prefix.
func Files(prefix string) (summaryPath, histogramPath string) {
	return prefix + "_summary.json", prefix + "_histogram.csv"
}

// Write stores rep and the distribution of h next to prefix.
func Write(prefix string, rep Report, h *stats.Histogram) error {
	summaryPath, histogramPath := Files(prefix)

	if err := WriteJSON(rep, summaryPath); err != nil {
		return err
	}

	return WriteCSV(h, histogramPath)
}

func WriteJSON(rep Report, filename string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// WriteCSV writes one latency_ms,count row per non-empty bucket.
func WriteCSV(h *stats.Histogram, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"latency_ms", "count"}); err != nil {
		return err
	}

	if h != nil {
		for _, b := range h.Distribution() {
			record := []string{
				strconv.FormatInt(b.LatencyMs, 10),
				strconv.FormatInt(b.Count, 10),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return f.Close()
}
