// Package render runs the control loop: sample the stick, compute LED levels
// and cursor position, draw the frame and drive the outputs.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/hw/adc"
	"github.com/cjeanneret/JoyGo/internal/hw/display"
	"github.com/cjeanneret/JoyGo/internal/hw/pwm"
	"github.com/cjeanneret/JoyGo/internal/logic/joystick"
)

// DefaultPeriod is the pause between two iterations.
const DefaultPeriod = 100 * time.Millisecond

// FlagReader exposes the toggle state read once per iteration.
type FlagReader interface {
	LEDsActive() bool
	BorderVisible() bool
}

// EdgeStats is implemented by flag sources that count button activity they
// could not log themselves.
type EdgeStats interface {
	Discarded() uint32
	Faults() uint32
}

// Config holds the wiring and geometry the loop needs.
type Config struct {
	VerticalChannel   int // ADC channel of the vertical axis, sampled first
	HorizontalChannel int // ADC channel of the horizontal axis
	BluePin           int // PWM pin driven by the vertical axis
	RedPin            int // PWM pin driven by the horizontal axis
	Wrap              uint32
	Center            joystick.CenterConfig
	Cursor            joystick.CursorLayout
	CursorSize        int
	Width             int
	Height            int
	Period            time.Duration
}

// Snapshot is what one iteration read and produced.
type Snapshot struct {
	Vertical   uint16
	Horizontal uint16
	Duty       joystick.DutyPair
	Cursor     joystick.Point
	Border     bool
	LEDs       bool
}

// Loop wires the collaborators together.
type Loop struct {
	cfg   Config
	adc   adc.Converter
	pwm   pwm.Driver
	sink  display.Sink
	flags FlagReader
	diag  *Diagnostics
	frame *display.Frame
	axis  joystick.Axis
	seen  seen
	sleep func(context.Context, time.Duration) error
}

// seen is the button state reported by the previous iteration.
type seen struct {
	leds      bool
	border    bool
	discarded uint32
	faults    uint32
}

// NewLoop validates cfg and configures both PWM channels with cfg.Wrap.
// diag may be nil to disable the per-cycle line.
func NewLoop(cfg Config, conv adc.Converter, p pwm.Driver, sink display.Sink, flags FlagReader, diag io.Writer) (*Loop, error) {
	if err := cfg.Center.Validate(); err != nil {
		return nil, fmt.Errorf("joystick: %w", err)
	}
	if err := cfg.Cursor.Validate(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	if cfg.Wrap == 0 {
		return nil, fmt.Errorf("pwm wrap must be > 0")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("display size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Period <= 0 {
		cfg.Period = DefaultPeriod
	}

	for _, pin := range []int{cfg.BluePin, cfg.RedPin} {
		if err := p.ConfigureChannel(pin, cfg.Wrap); err != nil {
			return nil, fmt.Errorf("configure pwm pin %d: %w", pin, err)
		}
	}

	l := &Loop{
		cfg:   cfg,
		adc:   conv,
		pwm:   p,
		sink:  sink,
		flags: flags,
		frame: display.NewFrame(cfg.Width, cfg.Height),
		axis:  joystick.Axis{Center: cfg.Center, Wrap: int(cfg.Wrap)},
		sleep: sleepContext,
	}
	l.seen.leds = flags.LEDsActive()
	l.seen.border = flags.BorderVisible()
	if diag != nil {
		l.diag = NewDiagnostics(diag)
	}
	return l, nil
}

// Frame returns the off-screen buffer. It is rewritten by every Step.
func (l *Loop) Frame() *display.Frame {
	return l.frame
}

// Step runs one iteration. A failed sample aborts the iteration. Output
// failures do not: the display and both LEDs are updated independently and
// their errors are returned joined.
func (l *Loop) Step() (Snapshot, error) {
	var s Snapshot

	vertical, err := l.sample(l.cfg.VerticalChannel)
	if err != nil {
		return s, err
	}
	horizontal, err := l.sample(l.cfg.HorizontalChannel)
	if err != nil {
		return s, err
	}

	s.Vertical = vertical
	s.Horizontal = horizontal
	s.LEDs = l.flags.LEDsActive()
	s.Duty = l.axis.Duties(vertical, horizontal, s.LEDs)
	s.Cursor = l.cfg.Cursor.Position(vertical, horizontal)
	s.Border = l.flags.BorderVisible()
	l.reportButtons(s)

	var errs []error
	l.frame.Clear()
	if s.Border {
		l.frame.DrawRect(0, 0, l.cfg.Width, l.cfg.Height, false, true)
	}
	l.frame.DrawRect(s.Cursor.Y, s.Cursor.X, l.cfg.CursorSize, l.cfg.CursorSize, true, true)
	if err := l.sink.Flush(l.frame); err != nil {
		errs = append(errs, fmt.Errorf("flush display: %w", err))
	}

	if err := l.pwm.SetLevel(l.cfg.BluePin, uint32(s.Duty.Blue)); err != nil {
		errs = append(errs, fmt.Errorf("set blue level: %w", err))
	}
	if err := l.pwm.SetLevel(l.cfg.RedPin, uint32(s.Duty.Red)); err != nil {
		errs = append(errs, fmt.Errorf("set red level: %w", err))
	}

	if l.diag != nil {
		l.diag.Report(s)
	}
	if debug.IsEnabled(debug.LevelLive) {
		debug.Live("%s", Line(s))
	}
	return s, errors.Join(errs...)
}

// reportButtons logs what the edge handlers did since the last iteration.
// The handlers cannot log themselves: they may run in interrupt context.
func (l *Loop) reportButtons(s Snapshot) {
	if s.LEDs != l.seen.leds {
		debug.Toggle("leds", s.LEDs)
	}
	if s.Border != l.seen.border {
		debug.Toggle("border", s.Border)
	}
	l.seen.leds, l.seen.border = s.LEDs, s.Border

	stats, ok := l.flags.(EdgeStats)
	if !ok {
		return
	}
	if d := stats.Discarded(); d != l.seen.discarded {
		debug.Verbose("%d button edge(s) discarded", d-l.seen.discarded)
		l.seen.discarded = d
	}
	if f := stats.Faults(); f != l.seen.faults {
		debug.Error(fmt.Errorf("indicator LED update failed %d time(s)", f-l.seen.faults))
		l.seen.faults = f
	}
}

func (l *Loop) sample(ch int) (uint16, error) {
	if err := l.adc.SelectChannel(ch); err != nil {
		return 0, fmt.Errorf("select adc channel %d: %w", ch, err)
	}
	v, err := l.adc.ReadChannel()
	if err != nil {
		return 0, fmt.Errorf("read adc channel %d: %w", ch, err)
	}
	return v, nil
}

// Run repeats Step every period until ctx is done. Iteration errors are
// logged and the loop carries on with the next cycle.
func (l *Loop) Run(ctx context.Context) error {
	debug.Live("Render loop started (period %v)", l.cfg.Period)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := l.Step(); err != nil {
			debug.Error(err)
		}

		if err := l.sleep(ctx, l.cfg.Period); err != nil {
			return err
		}
	}
}

// RunFrames runs n iterations, or forever when n <= 0.
func (l *Loop) RunFrames(ctx context.Context, n int) error {
	if n <= 0 {
		return l.Run(ctx)
	}
	for i := 0; i < n; i++ {
		if _, err := l.Step(); err != nil {
			debug.Error(err)
		}
		if i == n-1 {
			break
		}
		if err := l.sleep(ctx, l.cfg.Period); err != nil {
			return err
		}
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
