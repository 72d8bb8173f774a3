//go:build !tinygo

package gpio

import (
	"fmt"
	"sync"
	"time"

	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/stianeikeland/go-rpio/v4"
)

// edgePollInterval is how often the edge detect status register is checked.
// The BCM283x latches edges, so nothing is lost between polls.
const edgePollInterval = time.Millisecond

// RPiDriver is the real implementation for Raspberry Pi using go-rpio.
type RPiDriver struct {
	mu       sync.Mutex
	pins     map[int]rpio.Pin
	watchers map[int]EdgeHandler

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewDriver creates a GPIO driver based on the chosen mode.
// If mock is true, returns a MockDriver (for dev/test).
// If mock is false, returns a real RPiDriver (for Raspberry Pi).
func NewDriver(mock bool) (Driver, error) {
	if mock {
		debug.Info("Using MOCK GPIO driver (development mode)")
		return NewMockDriver(), nil
	}
	return NewRPiRealDriver()
}

// NewRPiRealDriver creates a real GPIO driver for Raspberry Pi.
// Requires running on a Raspberry Pi with access to /dev/gpiomem or as root.
func NewRPiRealDriver() (*RPiDriver, error) {
	debug.Info("Initializing real GPIO driver (go-rpio)")

	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open GPIO: %w (are you running on a Raspberry Pi?)", err)
	}

	debug.Verbose("GPIO memory mapped successfully")

	return &RPiDriver{
		pins:     make(map[int]rpio.Pin),
		watchers: make(map[int]EdgeHandler),
	}, nil
}

func (r *RPiDriver) SetupPin(pin int, mode PinMode) error {
	debug.GPIO("SetupPin", pin, mode)

	p := rpio.Pin(pin)

	switch mode {
	case Input:
		p.Input()
		p.PullOff()
	case InputPullUp:
		p.Input()
		p.PullUp()
	case Output:
		p.Output()
	default:
		return fmt.Errorf("unknown pin mode: %d", mode)
	}

	r.mu.Lock()
	r.pins[pin] = p
	r.mu.Unlock()
	return nil
}

func (r *RPiDriver) pin(pin int, fallback PinMode) (rpio.Pin, error) {
	r.mu.Lock()
	p, ok := r.pins[pin]
	r.mu.Unlock()
	if ok {
		return p, nil
	}
	// Pin not setup yet
	if err := r.SetupPin(pin, fallback); err != nil {
		return 0, err
	}
	return rpio.Pin(pin), nil
}

func (r *RPiDriver) WritePin(pin int, level Level) error {
	debug.GPIO("WritePin", pin, level)

	p, err := r.pin(pin, Output)
	if err != nil {
		return err
	}
	if level == High {
		p.High()
	} else {
		p.Low()
	}
	return nil
}

func (r *RPiDriver) ReadPin(pin int) (Level, error) {
	debug.GPIO("ReadPin", pin, nil)

	p, err := r.pin(pin, Input)
	if err != nil {
		return Low, err
	}
	if p.Read() == rpio.High {
		return High, nil
	}
	return Low, nil
}

// WatchEdge arms hardware edge detection on pin and dispatches matches from a
// single poller goroutine shared by all watched pins.
func (r *RPiDriver) WatchEdge(pin int, edge Edge, h EdgeHandler) error {
	debug.GPIO("WatchEdge", pin, edge)
	if h == nil {
		return fmt.Errorf("nil edge handler for pin %d", pin)
	}

	var e rpio.Edge
	switch edge {
	case FallingEdge:
		e = rpio.FallEdge
	case RisingEdge:
		e = rpio.RiseEdge
	case BothEdges:
		e = rpio.AnyEdge
	default:
		return fmt.Errorf("unknown edge: %d", edge)
	}

	p, err := r.pin(pin, InputPullUp)
	if err != nil {
		return err
	}
	p.Detect(e)

	r.mu.Lock()
	r.watchers[pin] = h
	var stop chan struct{}
	if r.stop == nil {
		stop = make(chan struct{})
		r.stop = stop
	}
	r.mu.Unlock()

	if stop != nil {
		r.wg.Add(1)
		go r.pollEdges(stop)
	}
	return nil
}

func (r *RPiDriver) pollEdges(stop <-chan struct{}) {
	defer r.wg.Done()
	ticker := time.NewTicker(edgePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		r.mu.Lock()
		fired := make([]int, 0, len(r.watchers))
		handlers := make([]EdgeHandler, 0, len(r.watchers))
		for pin, h := range r.watchers {
			if rpio.Pin(pin).EdgeDetected() {
				fired = append(fired, pin)
				handlers = append(handlers, h)
			}
		}
		r.mu.Unlock()

		for i, pin := range fired {
			handlers[i].HandleEdge(pin)
		}
	}
}

func (r *RPiDriver) Close() error {
	debug.Trace("GPIO Close (real driver)")

	r.mu.Lock()
	stop := r.stop
	r.stop = nil
	r.mu.Unlock()
	if stop != nil {
		close(stop)
		r.wg.Wait()
	}

	// Reset all pins to input (safe state)
	r.mu.Lock()
	defer r.mu.Unlock()
	for pin, p := range r.pins {
		debug.Verbose("Resetting pin %d to input", pin)
		if _, watched := r.watchers[pin]; watched {
			p.Detect(rpio.NoEdge)
		}
		p.Input()
	}

	return rpio.Close()
}
