// Package sim runs the controller in a terminal: the keyboard stands in for
// the stick and buttons, the OLED frame is drawn with block characters.
package sim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cjeanneret/JoyGo/internal/board"
	"github.com/cjeanneret/JoyGo/internal/config"
	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/logic/render"
)

// NudgeStep is how far one arrow key press moves an axis.
const NudgeStep = 256

// TickMsg asks the model to run one render iteration.
type TickMsg time.Time

// shared is the state every copy of the model points to.
type shared struct {
	board *board.Board
	bench *board.Bench
}

// Model is the Bubble Tea model of the simulator.
type Model struct {
	cfg    *config.Config
	shared *shared

	frames int
	last   render.Snapshot
	err    error
}

// New creates a simulator over a board wired to bench.
func New(cfg *config.Config, b *board.Board, bench *board.Bench) Model {
	return Model{
		cfg:    cfg,
		shared: &shared{board: b, bench: bench},
	}
}

// Frames returns the number of iterations run so far.
func (m Model) Frames() int { return m.frames }

// Last returns the snapshot of the latest iteration.
func (m Model) Last() render.Snapshot { return m.last }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.Period(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		s, err := m.shared.board.Loop().Step()
		m.err = err
		if err == nil {
			m.last = s
			m.frames++
		} else {
			debug.Error(err)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	bench := m.shared.bench
	pins := m.cfg.Pins

	switch msg.String() {
	case "q", "Q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		bench.ADC.Nudge(pins.VerticalChannel, NudgeStep)
	case "down", "j":
		bench.ADC.Nudge(pins.VerticalChannel, -NudgeStep)
	case "right", "l":
		bench.ADC.Nudge(pins.HorizontalChannel, NudgeStep)
	case "left", "h":
		bench.ADC.Nudge(pins.HorizontalChannel, -NudgeStep)

	case "c", "C":
		bench.ADC.Set(pins.VerticalChannel, m.cfg.Joystick.Center)
		bench.ADC.Set(pins.HorizontalChannel, m.cfg.Joystick.Center)

	case " ", "space", "enter":
		bench.GPIO.Trigger(pins.SelectorPin)
	case "b", "B":
		bench.GPIO.Trigger(pins.ButtonPin)
	}
	return m, nil
}
