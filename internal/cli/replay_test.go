package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesolver"
)

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newSampleReplay(t *testing.T, step bool) *replayModel {
	t.Helper()
	g := cubesolver.SampleGrid()
	sol, err := cubesolver.Solve(g)
	require.NoError(t, err)
	m, err := newReplayModel(g, sol, 1, step)
	require.NoError(t, err)
	return m
}

func TestReplayStepForwardAndBack(t *testing.T) {
	m := newSampleReplay(t, true)
	assert.Nil(t, m.Init(), "step mode waits for input")

	m.Update(key("n"))
	m.Update(key(" "))
	assert.Equal(t, 2, m.index)

	c, err := cubesolver.FromGrid(cubesolver.SampleGrid())
	require.NoError(t, err)
	c.Apply(m.moves[0])
	m.Update(key("b"))
	assert.Equal(t, 1, m.index)
	assert.Equal(t, c.Grid(), m.tracker.Cube().Grid())

	m.Update(key("left"))
	m.Update(key("left"))
	assert.Equal(t, 0, m.index)
	assert.Equal(t, cubesolver.SampleGrid(), m.tracker.Cube().Grid())
}

func TestReplayEndSolves(t *testing.T) {
	m := newSampleReplay(t, true)
	m.Update(key("e"))
	assert.Equal(t, len(m.moves), m.index)
	assert.True(t, m.tracker.IsSolved())
	assert.Equal(t, cubesolver.PhaseSolved, m.tracker.HighestPhase())
	assert.Contains(t, m.View(), "SOLVED!")

	// Nothing past the end.
	m.Update(key("n"))
	assert.Equal(t, len(m.moves), m.index)

	m.Update(key("r"))
	assert.Equal(t, 0, m.index)
}

func TestReplayTicks(t *testing.T) {
	m := newSampleReplay(t, false)
	require.NotNil(t, m.Init())

	m.Update(replayTickMsg{gen: m.gen})
	assert.Equal(t, 1, m.index)

	// Ticks from an old chain are dropped.
	m.Update(replayTickMsg{gen: m.gen - 1})
	assert.Equal(t, 1, m.index)

	// Space pauses autoplay; ticks then do nothing.
	m.Update(key(" "))
	assert.True(t, m.paused)
	m.Update(replayTickMsg{gen: m.gen})
	assert.Equal(t, 1, m.index)

	// Resuming starts a new chain.
	old := m.gen
	_, cmd := m.Update(key("p"))
	assert.False(t, m.paused)
	assert.NotNil(t, cmd)
	assert.Equal(t, old+1, m.gen)
}

func TestReplaySpeedBounds(t *testing.T) {
	m := newSampleReplay(t, true)
	for i := 0; i < 10; i++ {
		m.Update(key("+"))
	}
	assert.Equal(t, 16.0, m.speed)
	for i := 0; i < 10; i++ {
		m.Update(key("-"))
	}
	assert.Equal(t, 0.25, m.speed)
}

func TestReplayView(t *testing.T) {
	m := newSampleReplay(t, true)
	v := m.View()
	assert.Contains(t, v, "Move 0/")
	assert.Contains(t, v, "[STEP MODE]")
	assert.Contains(t, v, "Working on: ")
	assert.Contains(t, v, cubesolver.PhaseCrossEdges.DisplayName())

	m.Update(key("d"))
	assert.Contains(t, m.View(), m.tracker.Cube().String())

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, "Replay ended.\n", m.View())
}

func TestReplaySolvedCube(t *testing.T) {
	sol := &cubesolver.Solution{}
	m, err := newReplayModel(cubesolver.SolvedGrid(), sol, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.speed)
	assert.Nil(t, m.Init(), "nothing to play")
	assert.Contains(t, m.View(), "nothing to replay")
}
