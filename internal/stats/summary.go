// Package stats holds the latency histogram and turns it into the final
// run summary.
package stats

import (
	"fmt"

	errs "httplatencies/internal/errors"
)

// Summary is the final latency report, all values in milliseconds.
type Summary struct {
	Count  int64   `json:"count"`
	Min    int64   `json:"min_ms"`
	Max    int64   `json:"max_ms"`
	Mean   float64 `json:"mean_ms"`
	StdDev float64 `json:"stddev_ms"`
	P25    int64   `json:"p25_ms"`
	P50    int64   `json:"p50_ms"`
	P75    int64   `json:"p75_ms"`
	P95    int64   `json:"p95_ms"`
}

// Summarize computes the summary of h. It returns errs.ErrNoData when h is empty.
func Summarize(h *Histogram) (Summary, error) {
	if h == nil || h.Count() == 0 {
		return Summary{}, errs.ErrNoData
	}

	return Summary{
		Count:  h.Count(),
		Min:    h.Min(),
		Max:    h.Max(),
		Mean:   h.Mean(),
		StdDev: h.StdDev(),
		P25:    h.Percentile(25),
		P50:    h.Percentile(50),
		P75:    h.Percentile(75),
		P95:    h.Percentile(95),
	}, nil
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"min: %d, max: %d, mean: %.2f, std. deviation: %.2f, quartiles: %d %d %d %d (samples: %d)",
		s.Min, s.Max, s.Mean, s.StdDev, s.P25, s.P50, s.P75, s.P95, s.Count,
	)
}
