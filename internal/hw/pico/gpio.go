//go:build tinygo && rp2040

// Package pico implements the hardware collaborators on a Raspberry Pi Pico
// with TinyGo's machine package.
package pico

import (
	"fmt"
	"machine"

	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/hw/gpio"
)

// GPIO drives RP2040 pins directly. Edge handlers run in interrupt context.
type GPIO struct{}

var _ gpio.Driver = GPIO{}

func (GPIO) SetupPin(pin int, mode gpio.PinMode) error {
	debug.GPIO("SetupPin", pin, mode)
	var m machine.PinMode
	switch mode {
	case gpio.Input:
		m = machine.PinInput
	case gpio.InputPullUp:
		m = machine.PinInputPullup
	case gpio.Output:
		m = machine.PinOutput
	default:
		return fmt.Errorf("pin %d: unsupported mode %v", pin, mode)
	}
	machine.Pin(pin).Configure(machine.PinConfig{Mode: m})
	return nil
}

func (GPIO) WritePin(pin int, level gpio.Level) error {
	machine.Pin(pin).Set(bool(level))
	return nil
}

func (GPIO) ReadPin(pin int) (gpio.Level, error) {
	return gpio.Level(machine.Pin(pin).Get()), nil
}

func (GPIO) WatchEdge(pin int, edge gpio.Edge, h gpio.EdgeHandler) error {
	if h == nil {
		return fmt.Errorf("nil edge handler for pin %d", pin)
	}
	var change machine.PinChange
	switch edge {
	case gpio.FallingEdge:
		change = machine.PinFalling
	case gpio.RisingEdge:
		change = machine.PinRising
	default:
		change = machine.PinToggle
	}
	return machine.Pin(pin).SetInterrupt(change, func(p machine.Pin) {
		h.HandleEdge(int(p))
	})
}

func (GPIO) Close() error { return nil }
