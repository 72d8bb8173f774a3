//go:build tinygo && rp2040

// Firmware for a Raspberry Pi Pico. Uses the built-in wiring, there is no
// file system to read a config from.
//
//	tinygo flash -target=pico ./cmd/joygo-pico
package main

import (
	"context"
	"machine"
	"time"

	"github.com/cjeanneret/JoyGo/internal/board"
	"github.com/cjeanneret/JoyGo/internal/config"
	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/hw/pico"
	"github.com/cjeanneret/JoyGo/internal/logic/debounce"
)

func main() {
	// Leave time for the USB serial console to attach.
	time.Sleep(2 * time.Second)

	cfg := config.Default()
	debug.Init(cfg.Defaults.DebugLevel)

	conv, err := pico.NewADC(max(cfg.Pins.VerticalChannel, cfg.Pins.HorizontalChannel) + 1)
	if err != nil {
		halt(err)
	}
	panel, err := pico.NewOLED(cfg.Display.Width, cfg.Display.Height, cfg.Display.Address)
	if err != nil {
		halt(err)
	}

	parts := board.Parts{
		GPIO:    pico.GPIO{},
		ADC:     conv,
		PWM:     pico.NewPWM(cfg.PWM.FreqHz),
		Display: panel,
	}
	b, err := board.Assemble(cfg, parts, debounce.SinceBoot(), machine.Serial)
	if err != nil {
		halt(err)
	}
	if err := b.Run(context.Background(), 0); err != nil {
		halt(err)
	}
}

func halt(err error) {
	for {
		println("joygo:", err.Error())
		time.Sleep(time.Second)
	}
}
