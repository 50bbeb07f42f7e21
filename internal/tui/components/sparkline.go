package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var levels = []rune(" ▁▂▃▄▅▆▇█")

// Sparkline renders the last Width values as one line of block characters,
// scaled to the largest visible value.
type Sparkline struct {
	Data  []uint64
	Width int
	Style lipgloss.Style
	Label string
}

func NewSparkline(width int, label string, style lipgloss.Style) Sparkline {
	return Sparkline{
		Width: width,
		Label: label,
		Style: style,
		Data:  make([]uint64, 0, width),
	}
}

func (s *Sparkline) Add(val uint64) {
	s.Data = append(s.Data, val)
	if s.Width > 0 && len(s.Data) > s.Width {
		s.Data = s.Data[len(s.Data)-s.Width:]
	}
}

func (s Sparkline) peak() uint64 {
	var peak uint64
	for _, v := range s.Data {
		peak = max(peak, v)
	}

	return peak
}

// Graph is the bare line, padded to Width.
func (s Sparkline) Graph() string {
	var graph strings.Builder

	peak := s.peak()
	for _, v := range s.Data {
		idx := 0
		if peak > 0 {
			idx = int(float64(v) / float64(peak) * float64(len(levels)-1))
		}
		graph.WriteRune(levels[idx])
	}

	if pad := s.Width - len(s.Data); pad > 0 {
		graph.WriteString(strings.Repeat(" ", pad))
	}

	return graph.String()
}

func (s Sparkline) View() string {
	if s.Width <= 0 {
		return ""
	}

	return s.Style.Render(s.Label) + "\n" + s.Style.Render(s.Graph())
}
