// Package oled pushes frames to an SSD1306 panel over I2C.
package oled

import (
	"fmt"
	"image"

	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/hw/display"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
)

// SSD1306 is a display.Sink backed by periph's SSD1306 driver.
type SSD1306 struct {
	dev *ssd1306.Dev
}

var _ display.Sink = (*SSD1306)(nil)

// NewSSD1306 initializes a width x height panel on bus. The periph driver
// talks to the panel at address 0x3C.
func NewSSD1306(bus i2c.Bus, width, height int) (*SSD1306, error) {
	debug.Info("Initializing SSD1306 display %dx%d", width, height)

	opts := ssd1306.DefaultOpts
	opts.W = width
	opts.H = height
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: init: %w", err)
	}
	return &SSD1306{dev: dev}, nil
}

// Flush implements display.Sink.
func (s *SSD1306) Flush(f *display.Frame) error {
	if err := s.dev.Draw(s.dev.Bounds(), f.Image(), image.Point{}); err != nil {
		return fmt.Errorf("ssd1306: draw: %w", err)
	}
	return nil
}

// Close blanks the panel.
func (s *SSD1306) Close() error {
	return s.dev.Halt()
}
