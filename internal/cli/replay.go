package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
)

// replayDelay is the pause between moves at 1x speed.
const replayDelay = 400 * time.Millisecond

// replayModel steps through a solution on a copy of the starting cube.
type replayModel struct {
	start     *cubesolver.Cube
	moves     []cubesolver.Move
	segments  []cubesolver.Segment
	tracker   *cubesolver.Tracker
	index     int
	speed     float64
	stepMode  bool
	paused    bool
	quitting  bool
	debugMode bool
	// gen tags tick chains so a restarted chain drops stale ticks.
	gen int
}

func newReplayModel(start cubesolver.Grid, sol *cubesolver.Solution, speed float64, stepMode bool) (*replayModel, error) {
	c, err := cubesolver.FromGrid(start)
	if err != nil {
		return nil, err
	}
	if speed <= 0 {
		speed = 1
	}
	m := &replayModel{
		start:    c,
		moves:    sol.Moves,
		segments: sol.Segments,
		speed:    speed,
		stepMode: stepMode,
		paused:   stepMode, // Start paused in step mode
	}
	m.reset()
	return m, nil
}

type replayTickMsg struct{ gen int }

func (m *replayModel) Init() tea.Cmd {
	if m.stepMode {
		return nil // Wait for user input in step mode
	}
	return m.scheduleNext()
}

func (m *replayModel) scheduleNext() tea.Cmd {
	if m.done() {
		return nil
	}
	gen := m.gen
	delay := time.Duration(float64(replayDelay) / m.speed)
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return replayTickMsg{gen: gen}
	})
}

// restart begins a new tick chain.
func (m *replayModel) restart() tea.Cmd {
	m.gen++
	return m.scheduleNext()
}

func (m *replayModel) done() bool {
	return m.index >= len(m.moves)
}

func (m *replayModel) reset() {
	m.tracker = cubesolver.NewTracker(m.start)
	m.index = 0
}

func (m *replayModel) advance() {
	if m.done() {
		return
	}
	m.tracker.ApplyMove(m.moves[m.index])
	m.index++
}

// back undoes the last move by replaying up to it.
func (m *replayModel) back() {
	if m.index == 0 {
		return
	}
	target := m.index - 1
	m.reset()
	for m.index < target {
		m.advance()
	}
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n", "right":
			if m.stepMode || m.paused {
				m.advance()
			} else {
				m.paused = true
			}

		case "b", "left":
			m.back()

		case "p":
			m.paused = !m.paused
			if !m.paused && !m.stepMode {
				return m, m.restart()
			}

		case "r":
			m.reset()
			if !m.paused && !m.stepMode {
				return m, m.restart()
			}

		case "e", "end":
			for !m.done() {
				m.advance()
			}

		case "d":
			m.debugMode = !m.debugMode

		case "+", "=":
			m.speed *= 2
			if m.speed > 16 {
				m.speed = 16
			}

		case "-":
			m.speed /= 2
			if m.speed < 0.25 {
				m.speed = 0.25
			}
		}

	case replayTickMsg:
		if msg.gen != m.gen || m.paused || m.stepMode {
			return m, nil
		}
		m.advance()
		return m, m.scheduleNext()
	}

	return m, nil
}

// phaseAt returns the phase that produced move i.
func (m *replayModel) phaseAt(i int) (cubesolver.Phase, bool) {
	for _, seg := range m.segments {
		if i >= seg.Start && i < seg.End {
			return seg.Phase, true
		}
	}
	return 0, false
}

func (m *replayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("cubesolver replay"))
	b.WriteString("\n\n")

	progress := fmt.Sprintf("Move %d/%d", m.index, len(m.moves))
	if m.paused && !m.stepMode {
		progress += " [PAUSED]"
	}
	if m.stepMode {
		progress += " [STEP MODE]"
	}
	b.WriteString(statusStyle.Render(progress))
	b.WriteString(fmt.Sprintf(" (%.2gx speed)\n", m.speed))

	if m.tracker.IsSolved() {
		b.WriteString(fmt.Sprintf("Cube State: %s\n", phaseStyle.Render("SOLVED!")))
	} else if p, ok := m.phaseAt(m.index); ok {
		b.WriteString(fmt.Sprintf("Working on: %s\n", phaseStyle.Render(p.DisplayName())))
	}
	if h := m.tracker.HighestPhase(); h > cubesolver.PhaseCrossEdges {
		b.WriteString(fmt.Sprintf("Completed: %s\n", statusStyle.Render((h - 1).DisplayName())))
	}
	b.WriteString("\n")

	if m.debugMode {
		b.WriteString(m.tracker.Cube().String())
	} else {
		b.WriteString(renderNet(m.tracker.Cube().Grid()))
	}
	b.WriteString("\n")

	b.WriteString(m.movesWindow())
	b.WriteString("\n\n")

	help := "SPACE/n=next  b=back  p=play/pause  r=reset  e=end  d=letters  +/-=speed  q=quit"
	if m.stepMode {
		help = "SPACE/n=next  b=back  r=reset  e=end  d=letters  q=quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

// movesWindow shows the moves around the cursor with the next one marked.
func (m *replayModel) movesWindow() string {
	if len(m.moves) == 0 {
		return statusStyle.Render("Already solved, nothing to replay.")
	}
	const before, after = 8, 12
	lo := max(0, m.index-before)
	hi := min(len(m.moves), m.index+after)

	var parts []string
	if lo > 0 {
		parts = append(parts, "...")
	}
	for i := lo; i < hi; i++ {
		n := m.moves[i].Notation()
		if i == m.index {
			parts = append(parts, currentMoveStyle.Render(n))
		} else {
			parts = append(parts, moveStyle.Render(n))
		}
	}
	if hi < len(m.moves) {
		parts = append(parts, "...")
	}
	return "Moves: " + strings.Join(parts, " ") +
		"\n" + statusStyle.Render("Compact: "+notation.CompactString(m.moves[m.index:]))
}
