package gpio

import (
	"fmt"
	"sync"

	"github.com/cjeanneret/JoyGo/internal/debug"
)

// Level represents the logical state of a GPIO pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// PinMode indicates whether a GPIO is input or output.
type PinMode int

const (
	Input PinMode = iota
	InputPullUp
	Output
)

func (m PinMode) String() string {
	switch m {
	case Input:
		return "input"
	case InputPullUp:
		return "input-pullup"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Edge selects which transitions trigger an edge callback.
type Edge int

const (
	FallingEdge Edge = iota
	RisingEdge
	BothEdges
)

// EdgeHandler is called when a watched pin sees a matching transition.
// Implementations may be invoked from a driver goroutine or an interrupt
// and must not block.
type EdgeHandler interface {
	HandleEdge(pin int)
}

// EdgeHandlerFunc adapts a plain function to EdgeHandler.
type EdgeHandlerFunc func(pin int)

func (f EdgeHandlerFunc) HandleEdge(pin int) { f(pin) }

// Driver defines the abstract interface for controlling GPIOs.
// This allows plugging in a real Raspberry Pi implementation
// or a mock for development on PC.
type Driver interface {
	SetupPin(pin int, mode PinMode) error
	WritePin(pin int, level Level) error
	ReadPin(pin int) (Level, error)
	// WatchEdge registers h for transitions on an input pin.
	WatchEdge(pin int, edge Edge, h EdgeHandler) error
	Close() error
}

// MockDriver keeps pin levels in memory and lets callers fire edges by hand.
// Used for development on PC, the terminal simulator and tests.
// The zero value is ready to use.
type MockDriver struct {
	mu       sync.Mutex
	modes    map[int]PinMode
	levels   map[int]Level
	handlers map[int]EdgeHandler
}

// NewMockDriver returns an empty MockDriver.
func NewMockDriver() *MockDriver {
	return &MockDriver{}
}

func (m *MockDriver) init() {
	if m.modes == nil {
		m.modes = make(map[int]PinMode)
		m.levels = make(map[int]Level)
		m.handlers = make(map[int]EdgeHandler)
	}
}

func (m *MockDriver) SetupPin(pin int, mode PinMode) error {
	debug.GPIO("SetupPin", pin, mode)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	m.modes[pin] = mode
	if mode == InputPullUp {
		m.levels[pin] = High
	}
	return nil
}

func (m *MockDriver) WritePin(pin int, level Level) error {
	debug.GPIO("WritePin", pin, level)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	m.levels[pin] = level
	return nil
}

func (m *MockDriver) ReadPin(pin int) (Level, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	level := m.levels[pin]
	debug.GPIO("ReadPin", pin, level)
	return level, nil
}

func (m *MockDriver) WatchEdge(pin int, edge Edge, h EdgeHandler) error {
	debug.GPIO("WatchEdge", pin, edge)
	if h == nil {
		return fmt.Errorf("nil edge handler for pin %d", pin)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	m.handlers[pin] = h
	return nil
}

// Trigger simulates a transition on pin and calls its handler, if any.
// It returns false when nothing watches the pin.
func (m *MockDriver) Trigger(pin int) bool {
	m.mu.Lock()
	m.init()
	h := m.handlers[pin]
	m.mu.Unlock()
	if h == nil {
		return false
	}
	debug.GPIO("Trigger", pin, nil)
	h.HandleEdge(pin)
	return true
}

// Mode returns the mode a pin was set up with.
func (m *MockDriver) Mode(pin int) (PinMode, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	mode, ok := m.modes[pin]
	return mode, ok
}

func (m *MockDriver) Close() error {
	debug.Trace("GPIO Close (mock)")
	return nil
}
