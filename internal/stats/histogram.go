package stats

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// HighestTrackable is the largest latency the histogram can hold.
const HighestTrackable = 10 * time.Minute

// Histogram counts latencies at millisecond resolution. It is not safe for
// concurrent use; the aggregator is its only owner.
type Histogram struct {
	hist *hdrhistogram.Histogram
}

func NewHistogram() *Histogram {
	// 1ms to 10min, 3 significant figures (exact below ~2s)
	h := hdrhistogram.New(1, HighestTrackable.Milliseconds(), 3)

	return &Histogram{hist: h}
}

// Millis truncates d to whole milliseconds.
func Millis(d time.Duration) int64 {
	return d.Milliseconds()
}

// Record adds one sample. Latencies beyond HighestTrackable are rejected.
func (h *Histogram) Record(d time.Duration) error {
	return h.hist.RecordValue(Millis(d))
}

func (h *Histogram) Count() int64 {
	return h.hist.TotalCount()
}

func (h *Histogram) Min() int64 {
	return h.hist.Min()
}

func (h *Histogram) Max() int64 {
	return h.hist.Max()
}

func (h *Histogram) Mean() float64 {
	return h.hist.Mean()
}

func (h *Histogram) StdDev() float64 {
	return h.hist.StdDev()
}

// Percentile returns the value at quantile q (0..100), clamped to [Min, Max].
func (h *Histogram) Percentile(q float64) int64 {
	v := h.hist.ValueAtQuantile(q)

	return min(max(v, h.Min()), h.Max())
}

// Bucket is one non-empty latency bucket.
type Bucket struct {
	LatencyMs int64
	Count     int64
}

// Distribution lists the non-empty buckets in ascending latency order.
func (h *Histogram) Distribution() []Bucket {
	var out []Bucket

	for _, b := range h.hist.Distribution() {
		if b.Count == 0 {
			continue
		}

		out = append(out, Bucket{LatencyMs: b.From, Count: b.Count})
	}

	return out
}
