package sim

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cjeanneret/JoyGo/internal/hw/display"
	"github.com/cjeanneret/JoyGo/internal/hw/gpio"
	"github.com/cjeanneret/JoyGo/internal/logic/render"
)

// RenderFrame draws f with half-block characters, two pixel rows per line.
func RenderFrame(f *display.Frame) string {
	var b strings.Builder
	for y := 0; y < f.Height(); y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < f.Width(); x++ {
			top := f.Pixel(x, y)
			bottom := y+1 < f.Height() && f.Pixel(x, y+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

func (m Model) View() string {
	screen := styleScreen.Render(RenderFrame(m.shared.board.Loop().Frame()))

	var status strings.Builder
	status.WriteString(styleTitle.Render("JoyGo simulator"))
	status.WriteString(fmt.Sprintf("  frame %d\n", m.frames))
	status.WriteString(m.ledLine())
	status.WriteByte('\n')
	status.WriteString(render.Line(m.last))
	if m.err != nil {
		status.WriteByte('\n')
		status.WriteString(styleError.Render("error: " + m.err.Error()))
	}

	help := styleHelp.Render("arrows/hjkl move  c center  space selector  b button  q quit")
	return lipgloss.JoinVertical(lipgloss.Left, screen, status.String(), help)
}

func (m Model) ledLine() string {
	pins := m.cfg.Pins
	pwm := m.shared.bench.PWM
	wrap := m.cfg.PWM.Wrap

	indicator := styleDim.Render("○ green")
	if lvl, err := m.shared.bench.GPIO.ReadPin(pins.IndicatorPin); err == nil && lvl == gpio.High {
		indicator = styleGreen.Render("● green")
	}

	leds := styleGreen.Render("on")
	if !m.shared.board.Flags().LEDsActive() {
		leds = styleDim.Render("off")
	}

	return fmt.Sprintf("%s %s  %s %s  %s  LEDs %s",
		styleBlue.Render("blue"), bar(pwm.Level(pins.BluePin), wrap),
		styleRed.Render("red"), bar(pwm.Level(pins.RedPin), wrap),
		indicator, leds)
}

// bar renders level/wrap as a ten cell gauge.
func bar(level, wrap uint32) string {
	const cells = 10
	n := 0
	if wrap > 0 {
		n = int(uint64(level) * cells / uint64(wrap))
	}
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", cells-n) + "]"
}
