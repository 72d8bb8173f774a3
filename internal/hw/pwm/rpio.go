//go:build !tinygo

package pwm

import (
	"fmt"
	"sync"

	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/stianeikeland/go-rpio/v4"
)

// RPi drives the BCM283x hardware PWM through go-rpio. Only pins routed to a
// PWM channel work: BCM12/18 (PWM0) and BCM13/19 (PWM1).
//
// The GPIO memory must already be mapped, which gpio.NewRPiRealDriver does.
type RPi struct {
	mu    sync.Mutex
	freq  int // PWM output frequency in Hz
	wraps map[int]uint32
}

// NewRPi creates a driver producing freqHz at the output for every channel.
func NewRPi(freqHz int) *RPi {
	if freqHz <= 0 {
		freqHz = 1000
	}
	debug.Info("Initializing hardware PWM (go-rpio) at %d Hz", freqHz)
	return &RPi{
		freq:  freqHz,
		wraps: make(map[int]uint32),
	}
}

func (r *RPi) ConfigureChannel(pin int, wrap uint32) error {
	debug.PWM("ConfigureChannel", pin, wrap)
	switch pin {
	case 12, 13, 18, 19:
	default:
		return fmt.Errorf("pin %d has no hardware PWM channel", pin)
	}
	if wrap == 0 {
		return fmt.Errorf("pwm pin %d: wrap must be > 0", pin)
	}

	p := rpio.Pin(pin)
	p.Pwm()
	// The PWM clock ticks once per counter step, so a full period lasts wrap+1
	// ticks.
	p.Freq(r.freq * int(wrap+1))
	p.DutyCycle(0, wrap+1)

	r.mu.Lock()
	r.wraps[pin] = wrap
	r.mu.Unlock()
	return nil
}

func (r *RPi) SetLevel(pin int, duty uint32) error {
	debug.PWM("SetLevel", pin, duty)
	r.mu.Lock()
	wrap, ok := r.wraps[pin]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("pwm pin %d not configured", pin)
	}
	if duty > wrap {
		duty = wrap
	}
	rpio.Pin(pin).DutyCycle(duty, wrap+1)
	return nil
}

// Close turns every configured channel off.
func (r *RPi) Close() error {
	debug.Trace("PWM Close (real driver)")
	r.mu.Lock()
	defer r.mu.Unlock()
	for pin, wrap := range r.wraps {
		rpio.Pin(pin).DutyCycle(0, wrap+1)
	}
	return nil
}
