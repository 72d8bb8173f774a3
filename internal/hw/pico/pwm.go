//go:build tinygo && rp2040

package pico

import (
	"fmt"
	"machine"

	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/hw/pwm"
)

// slice abstracts TinyGo's unexported *pwmGroup type.
type slice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetTop(top uint32)
	Set(channel uint8, value uint32)
}

type output struct {
	slice   slice
	channel uint8
	wrap    uint32
}

// PWM drives RP2040 PWM slices. GPIO n belongs to slice (n/2)%8.
type PWM struct {
	period  uint64 // nanoseconds
	outputs map[int]output
}

var _ pwm.Driver = (*PWM)(nil)

// NewPWM creates a driver running every slice at freqHz.
func NewPWM(freqHz int) *PWM {
	if freqHz <= 0 {
		freqHz = 1000
	}
	return &PWM{
		period:  uint64(1e9 / freqHz),
		outputs: make(map[int]output),
	}
}

func sliceFor(pin int) slice {
	switch (pin >> 1) & 0x7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

func (p *PWM) ConfigureChannel(pin int, wrap uint32) error {
	debug.PWM("ConfigureChannel", pin, wrap)
	if wrap == 0 {
		return fmt.Errorf("pwm pin %d: wrap must be > 0", pin)
	}
	s := sliceFor(pin)
	if err := s.Configure(machine.PWMConfig{Period: p.period}); err != nil {
		return fmt.Errorf("pwm pin %d: %w", pin, err)
	}
	s.SetTop(wrap)
	ch, err := s.Channel(machine.Pin(pin))
	if err != nil {
		return fmt.Errorf("pwm pin %d: %w", pin, err)
	}
	s.Set(ch, 0)
	p.outputs[pin] = output{slice: s, channel: ch, wrap: wrap}
	return nil
}

func (p *PWM) SetLevel(pin int, duty uint32) error {
	out, ok := p.outputs[pin]
	if !ok {
		return fmt.Errorf("pwm pin %d not configured", pin)
	}
	if duty > out.wrap {
		duty = out.wrap
	}
	out.slice.Set(out.channel, duty)
	return nil
}

func (p *PWM) Close() error {
	for _, out := range p.outputs {
		out.slice.Set(out.channel, 0)
	}
	return nil
}
