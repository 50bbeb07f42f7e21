package live

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)

	return model, cmd
}

func TestProgressUpdatesView(t *testing.T) {
	m := NewModel(40)

	m, _ = update(t, m, ProgressMsg{Completed: 40, Expected: 40})

	assert.Equal(t, 1.0, m.percent())
	assert.Contains(t, m.View(), "DONE: 40/40")
}

func TestRecentErrorsAreBounded(t *testing.T) {
	m := NewModel(10)

	for i := range recentErrors + 3 {
		m, _ = update(t, m, ErrorMsg{Task: i, Err: "connection refused"})
	}

	assert.Equal(t, recentErrors+3, m.Errors)
	require.Len(t, m.Recent, recentErrors)
	assert.Equal(t, "8 ERROR connection refused", m.Recent[recentErrors-1])
	assert.Contains(t, m.View(), "ERR: 9")
}

func TestDoneQuits(t *testing.T) {
	m := NewModel(10)

	m, cmd := update(t, m, DoneMsg{Summary: "min: 1, max: 2"})
	require.NotNil(t, cmd)

	assert.True(t, m.Done)
	assert.False(t, m.Quitting)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "min: 1, max: 2")
}

func TestKeyQuits(t *testing.T) {
	m, cmd := update(t, NewModel(10), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)

	assert.True(t, m.Quitting)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTickFeedsSparkline(t *testing.T) {
	m := NewModel(300)

	m, _ = update(t, m, ProgressMsg{Completed: 100, Expected: 300})
	m, cmd := update(t, m, tickMsg{})
	assert.NotNil(t, cmd)

	m, _ = update(t, m, ProgressMsg{Completed: 300, Expected: 300})
	m, _ = update(t, m, tickMsg{})

	assert.Equal(t, []uint64{100, 200}, m.Samples.Data)
}
