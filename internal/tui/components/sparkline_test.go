package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSparklineKeepsWindow(t *testing.T) {
	s := NewSparkline(3, "samples", lipgloss.NewStyle())

	for v := range uint64(5) {
		s.Add(v)
	}

	assert.Equal(t, []uint64{2, 3, 4}, s.Data)
}

func TestSparklineGraph(t *testing.T) {
	s := NewSparkline(4, "samples", lipgloss.NewStyle())
	s.Add(0)
	s.Add(8)

	assert.Equal(t, " █  ", s.Graph())
}

func TestSparklineZeroWidth(t *testing.T) {
	assert.Empty(t, NewSparkline(0, "x", lipgloss.NewStyle()).View())
}
