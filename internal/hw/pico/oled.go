//go:build tinygo && rp2040

package pico

import (
	"fmt"
	"machine"

	"tinygo.org/x/drivers/ssd1306"

	"github.com/cjeanneret/JoyGo/internal/hw/display"
)

// I2C1 wiring of the display.
const (
	sdaPin = machine.GP14
	sclPin = machine.GP15
)

// OLED pushes frames to an SSD1306 on I2C1. The frame buffer already uses
// the controller's page layout, so it is copied as is.
type OLED struct {
	dev *ssd1306.Device
}

var _ display.Sink = (*OLED)(nil)

// NewOLED configures I2C1 at 400 kHz and the panel at address.
func NewOLED(width, height int, address uint16) (*OLED, error) {
	err := machine.I2C1.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       sdaPin,
		SCL:       sclPin,
	})
	if err != nil {
		return nil, fmt.Errorf("ssd1306: i2c: %w", err)
	}

	dev := ssd1306.NewI2C(machine.I2C1)
	dev.Configure(ssd1306.Config{
		Address: address,
		Width:   int16(width),
		Height:  int16(height),
	})
	dev.ClearDisplay()
	return &OLED{dev: dev}, nil
}

func (o *OLED) Flush(f *display.Frame) error {
	if err := o.dev.SetBuffer(f.Bytes()); err != nil {
		return fmt.Errorf("ssd1306: %w", err)
	}
	return o.dev.Display()
}
