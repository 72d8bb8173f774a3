//go:build !tinygo

package board

import (
	"fmt"
	"io"

	"github.com/cjeanneret/JoyGo/internal/config"
	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/hw/adc"
	"github.com/cjeanneret/JoyGo/internal/hw/gpio"
	"github.com/cjeanneret/JoyGo/internal/hw/i2cbus"
	"github.com/cjeanneret/JoyGo/internal/hw/oled"
	"github.com/cjeanneret/JoyGo/internal/hw/pwm"
	"github.com/cjeanneret/JoyGo/internal/logic/debounce"
	"periph.io/x/conn/v3/physic"
)

// Open builds the collaborators for cfg.Defaults.Backend and wires them.
// diag receives the per-cycle diagnostic line and may be nil.
func Open(cfg *config.Config, diag io.Writer) (*Board, error) {
	debug.Value("Backend", cfg.Defaults.Backend)
	switch cfg.Defaults.Backend {
	case config.BackendMock:
		b, _, err := OpenBench(cfg, diag)
		return b, err
	case config.BackendRPi:
		parts, closers, err := openRPi(cfg)
		if err != nil {
			return nil, err
		}
		b, err := Assemble(cfg, parts, debounce.SinceBoot(), diag)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		b.closers = closers
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Defaults.Backend)
	}
}

func openRPi(cfg *config.Config) (Parts, []func() error, error) {
	var closers []func() error
	fail := func(err error) (Parts, []func() error, error) {
		closeAll(closers)
		return Parts{}, nil, err
	}

	g, err := gpio.NewDriver(false)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, g.Close)

	p := pwm.NewRPi(cfg.PWM.FreqHz)
	closers = append(closers, p.Close)

	bus, err := i2cbus.Open(cfg.Defaults.I2CBus)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, bus.Close)

	conv, err := adc.NewADS1015(bus, adc.ADS1015Config{
		Address:   cfg.ADC.Address,
		FullScale: physic.ElectricPotential(cfg.ADC.FullScaleMv) * physic.MilliVolt,
		Channels:  max(cfg.Pins.VerticalChannel, cfg.Pins.HorizontalChannel) + 1,
	})
	if err != nil {
		return fail(err)
	}
	closers = append(closers, conv.Close)

	if cfg.Display.Address != 0x3C {
		debug.Info("display.address %#x ignored on rpi, the SSD1306 driver uses 0x3C", cfg.Display.Address)
	}
	panel, err := oled.NewSSD1306(bus, cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, panel.Close)

	return Parts{GPIO: g, ADC: conv, PWM: p, Display: panel}, closers, nil
}
