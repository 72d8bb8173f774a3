//go:build tinygo && rp2040

package pico

import (
	"fmt"
	"machine"

	"github.com/cjeanneret/JoyGo/internal/hw/adc"
)

// inputs lists the RP2040 analog pins by channel number.
var inputs = []machine.Pin{machine.ADC0, machine.ADC1, machine.ADC2}

// ADC reads the on-chip converter. machine.ADC returns 16-bit values; they
// are shifted back to the 12 bits the hardware actually samples.
type ADC struct {
	pins     []machine.ADC
	selected int
}

var _ adc.Converter = (*ADC)(nil)

// NewADC enables the converter and the first n inputs.
func NewADC(n int) (*ADC, error) {
	if n <= 0 || n > len(inputs) {
		return nil, fmt.Errorf("adc: channels must be 1-%d, got %d", len(inputs), n)
	}
	machine.InitADC()
	a := &ADC{}
	for _, p := range inputs[:n] {
		in := machine.ADC{Pin: p}
		in.Configure(machine.ADCConfig{})
		a.pins = append(a.pins, in)
	}
	return a, nil
}

func (a *ADC) SelectChannel(ch int) error {
	if ch < 0 || ch >= len(a.pins) {
		return fmt.Errorf("adc: channel %d out of range [0, %d)", ch, len(a.pins))
	}
	a.selected = ch
	return nil
}

func (a *ADC) ReadChannel() (uint16, error) {
	return a.pins[a.selected].Get() >> 4, nil
}

func (a *ADC) Close() error { return nil }
