package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	replayWidth  = 80
	replayHeight = 20
)

type TickMsg time.Time

// Model replays a stored run in the terminal. It only reads what the driver
// already persisted; it never touches live simulation state.
type Model struct {
	runID     string
	rows      [][]float64
	positions [][]int
	dt        float64

	canvas   *Canvas
	playHead int
	running  bool
	scale    float64
	fps      int
	showHelp bool
}

// NewModel prepares a replay of a stored run. rows and positions come from
// the run's streams and must have one entry per step.
func NewModel(runID string, rows [][]float64, positions [][]int, dt float64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	scale := 0.0
	for _, row := range rows {
		for _, v := range row {
			if a := absFloat(v); a > scale {
				scale = a
			}
		}
	}
	if scale == 0 {
		scale = 1
	}
	return Model{
		runID:     runID,
		rows:      rows,
		positions: positions,
		dt:        dt,
		canvas:    NewCanvas(replayWidth, replayHeight),
		running:   true,
		scale:     scale,
		fps:       fps,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the play head.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.playHead = 0
		case "left", "h":
			m.running = false
			if m.playHead > 0 {
				m.playHead--
			}
		case "right", "l":
			m.running = false
			if m.playHead < len(m.rows)-1 {
				m.playHead++
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && len(m.rows) > 0 {
			m.playHead = (m.playHead + 1) % len(m.rows)
		}
		return m, tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.rows) == 0 {
		return "no steps stored for this run\n"
	}

	m.canvas.Clear()
	pos := []int(nil)
	if m.playHead < len(m.positions) {
		pos = m.positions[m.playHead]
	}
	m.canvas.RenderRow(m.rows[m.playHead], pos, m.scale)

	header := headerStyle.Render(fmt.Sprintf("replay %s", m.runID))
	status := valueStyle.Render(fmt.Sprintf("step %d/%d", m.playHead, len(m.rows)-1)) +
		labelStyle.Render(fmt.Sprintf("  t=%.4fs", float64(m.playHead)*m.dt))
	if !m.running {
		status += "  " + pausedStyle.Render("PAUSED")
	}

	out := header + "\n" + status + "\n" + canvasStyle.Render(m.canvas.String())
	if m.showHelp {
		out += helpStyle.Render("space pause · ←/→ step · r restart · q quit")
	} else {
		out += helpStyle.Render("? help · q quit")
	}
	return out + "\n"
}

// Run launches the replay in the alternate screen.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
