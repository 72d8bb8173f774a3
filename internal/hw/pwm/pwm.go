// Package pwm drives LED brightness through pulse-width modulated outputs.
package pwm

import (
	"fmt"
	"sync"

	"github.com/cjeanneret/JoyGo/internal/debug"
)

// Driver configures PWM outputs and sets their level. Levels range from 0 to
// the wrap value given at configuration time.
type Driver interface {
	ConfigureChannel(pin int, wrap uint32) error
	SetLevel(pin int, duty uint32) error
	Close() error
}

// Mock remembers the last level written to each pin.
type Mock struct {
	mu     sync.Mutex
	wraps  map[int]uint32
	levels map[int]uint32
	writes int
}

// NewMock returns an empty Mock.
func NewMock() *Mock {
	return &Mock{
		wraps:  make(map[int]uint32),
		levels: make(map[int]uint32),
	}
}

func (m *Mock) ConfigureChannel(pin int, wrap uint32) error {
	debug.PWM("ConfigureChannel", pin, wrap)
	if wrap == 0 {
		return fmt.Errorf("pwm pin %d: wrap must be > 0", pin)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wraps[pin] = wrap
	m.levels[pin] = 0
	return nil
}

func (m *Mock) SetLevel(pin int, duty uint32) error {
	debug.PWM("SetLevel", pin, duty)
	m.mu.Lock()
	defer m.mu.Unlock()
	wrap, ok := m.wraps[pin]
	if !ok {
		return fmt.Errorf("pwm pin %d not configured", pin)
	}
	if duty > wrap {
		return fmt.Errorf("pwm pin %d: duty %d exceeds wrap %d", pin, duty, wrap)
	}
	m.levels[pin] = duty
	m.writes++
	return nil
}

// Level returns the last level written to pin.
func (m *Mock) Level(pin int) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels[pin]
}

// Writes returns how many SetLevel calls succeeded.
func (m *Mock) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Mock) Close() error {
	debug.Trace("PWM Close (mock)")
	return nil
}
