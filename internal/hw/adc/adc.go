// Package adc abstracts the analog-to-digital converter the joystick is wired
// to. Samples are always reported on a 12-bit scale.
package adc

import (
	"fmt"
	"sync"

	"github.com/cjeanneret/JoyGo/internal/debug"
)

// MaxSample is the largest value a Converter returns.
const MaxSample = 4095

// Converter reads one channel at a time: select it, then read it.
type Converter interface {
	SelectChannel(ch int) error
	ReadChannel() (uint16, error)
	Close() error
}

// Mock holds one settable value per channel. Safe for concurrent use, so the
// simulator can move the stick while the render loop samples it.
type Mock struct {
	mu       sync.Mutex
	channels []uint16
	selected int
}

// NewMock creates a converter with n channels, all resting at center.
func NewMock(n int, center uint16) *Mock {
	ch := make([]uint16, n)
	for i := range ch {
		ch[i] = center
	}
	return &Mock{channels: ch}
}

// Set stores a value for ch, clamped to MaxSample.
func (m *Mock) Set(ch int, v int) {
	if v < 0 {
		v = 0
	}
	if v > MaxSample {
		v = MaxSample
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch >= 0 && ch < len(m.channels) {
		m.channels[ch] = uint16(v)
	}
}

// Get returns the stored value for ch.
func (m *Mock) Get(ch int) uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch < 0 || ch >= len(m.channels) {
		return 0
	}
	return m.channels[ch]
}

// Nudge adds delta to ch, clamping at the ends of the range.
func (m *Mock) Nudge(ch int, delta int) {
	m.Set(ch, int(m.Get(ch))+delta)
}

func (m *Mock) SelectChannel(ch int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch < 0 || ch >= len(m.channels) {
		return fmt.Errorf("adc channel %d out of range [0, %d)", ch, len(m.channels))
	}
	m.selected = ch
	return nil
}

func (m *Mock) ReadChannel() (uint16, error) {
	m.mu.Lock()
	if len(m.channels) == 0 {
		m.mu.Unlock()
		return 0, fmt.Errorf("adc has no channels")
	}
	ch, v := m.selected, m.channels[m.selected]
	m.mu.Unlock()
	debug.ADC("ReadChannel", ch, v)
	return v, nil
}

func (m *Mock) Close() error { return nil }
