// Package board assembles the collaborators selected by the configuration
// and hands them to the render loop.
package board

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cjeanneret/JoyGo/internal/config"
	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/hw/adc"
	"github.com/cjeanneret/JoyGo/internal/hw/display"
	"github.com/cjeanneret/JoyGo/internal/hw/gpio"
	"github.com/cjeanneret/JoyGo/internal/hw/pwm"
	"github.com/cjeanneret/JoyGo/internal/logic/debounce"
	"github.com/cjeanneret/JoyGo/internal/logic/joystick"
	"github.com/cjeanneret/JoyGo/internal/logic/render"
	"github.com/cjeanneret/JoyGo/internal/logic/toggle"
)

// Parts are the hardware collaborators of one backend.
type Parts struct {
	GPIO    gpio.Driver
	ADC     adc.Converter
	PWM     pwm.Driver
	Display display.Sink
}

// Bench exposes the in-memory collaborators of the mock backend so the
// simulator and tests can move the stick and press buttons.
type Bench struct {
	GPIO    *gpio.MockDriver
	ADC     *adc.Mock
	PWM     *pwm.Mock
	Display *display.Recorder
}

// Parts returns the bench as generic collaborators.
func (b *Bench) Parts() Parts {
	return Parts{GPIO: b.GPIO, ADC: b.ADC, PWM: b.PWM, Display: b.Display}
}

// NewBench creates mock collaborators with every channel resting at center.
func NewBench(cfg *config.Config) *Bench {
	channels := max(cfg.Pins.VerticalChannel, cfg.Pins.HorizontalChannel) + 1
	return &Bench{
		GPIO:    gpio.NewMockDriver(),
		ADC:     adc.NewMock(channels, uint16(cfg.Joystick.Center)),
		PWM:     pwm.NewMock(),
		Display: display.NewRecorder(),
	}
}

// Board is a fully wired joystick controller.
type Board struct {
	cfg     *config.Config
	parts   Parts
	flags   *toggle.Flags
	gate    *debounce.Gate
	loop    *render.Loop
	closers []func() error
}

// OpenBench wires the mock backend and returns its collaborators.
func OpenBench(cfg *config.Config, diag io.Writer) (*Board, *Bench, error) {
	bench := NewBench(cfg)
	b, err := Assemble(cfg, bench.Parts(), debounce.SinceBoot(), diag)
	if err != nil {
		return nil, nil, err
	}
	b.closers = []func() error{bench.PWM.Close, bench.ADC.Close, bench.GPIO.Close}
	return b, bench, nil
}

// Assemble registers the buttons on parts.GPIO and builds the render loop.
// clock timestamps button edges for the debounce gate.
func Assemble(cfg *config.Config, parts Parts, clock debounce.Clock, diag io.Writer) (*Board, error) {
	b := &Board{
		cfg:   cfg,
		parts: parts,
		flags: toggle.NewFlags(),
		gate:  debounce.NewGate(cfg.DebounceWindow()),
	}

	debug.Step(1, "Registering buttons")
	buttons := toggle.Buttons{
		SelectorPin:  cfg.Pins.SelectorPin,
		SecondaryPin: cfg.Pins.ButtonPin,
		IndicatorPin: cfg.Pins.IndicatorPin,
	}
	if err := buttons.Register(parts.GPIO, b.gate, clock, b.flags); err != nil {
		return nil, fmt.Errorf("register buttons: %w", err)
	}
	debug.PrintStruct("Buttons", buttons)

	debug.Step(2, "Building render loop")
	loop, err := render.NewLoop(LoopConfig(cfg), parts.ADC, parts.PWM, parts.Display, b.flags, diag)
	if err != nil {
		return nil, fmt.Errorf("build render loop: %w", err)
	}
	b.loop = loop
	return b, nil
}

// LoopConfig converts the file configuration into render settings.
func LoopConfig(cfg *config.Config) render.Config {
	layout := joystick.DefaultCursorLayout(cfg.Display.Width, cfg.Display.Height, cfg.Display.CursorSize)
	layout.FullScale = cfg.Joystick.FullScale
	return render.Config{
		VerticalChannel:   cfg.Pins.VerticalChannel,
		HorizontalChannel: cfg.Pins.HorizontalChannel,
		BluePin:           cfg.Pins.BluePin,
		RedPin:            cfg.Pins.RedPin,
		Wrap:              cfg.PWM.Wrap,
		Center: joystick.CenterConfig{
			Center:    cfg.Joystick.Center,
			DeadZone:  cfg.Joystick.DeadZone,
			FullScale: cfg.Joystick.FullScale,
		},
		Cursor:     layout,
		CursorSize: cfg.Display.CursorSize,
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Period:     cfg.Period(),
	}
}

// Loop returns the render loop.
func (b *Board) Loop() *render.Loop { return b.loop }

// Flags returns the toggle state shared by the buttons and the loop.
func (b *Board) Flags() *toggle.Flags { return b.flags }

// Run drives the loop for frames iterations, or until ctx is done when
// frames <= 0.
func (b *Board) Run(ctx context.Context, frames int) error {
	debug.Section("Render loop")
	err := b.loop.RunFrames(ctx, frames)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close releases the collaborators in reverse order of creation.
func (b *Board) Close() error {
	err := closeAll(b.closers)
	b.closers = nil
	return err
}

func closeAll(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
