package sim

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cjeanneret/JoyGo/internal/board"
	"github.com/cjeanneret/JoyGo/internal/config"
	"github.com/cjeanneret/JoyGo/internal/debug"
)

// Run starts the simulator on the mock backend and blocks until the user
// quits. Debug output goes to logw so it does not garble the screen.
func Run(cfg *config.Config, logw io.Writer) error {
	if logw == nil {
		logw = io.Discard
	}
	debug.SetOutput(logw)

	b, bench, err := board.OpenBench(cfg, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			debug.Error(err)
		}
	}()

	p := tea.NewProgram(New(cfg, b, bench), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
