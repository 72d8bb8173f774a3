package toggle

import (
	"github.com/cjeanneret/JoyGo/internal/hw/gpio"
	"github.com/cjeanneret/JoyGo/internal/logic/debounce"
)

// Selector handles the joystick push switch. An accepted edge flips the
// indicator LED and the display border.
type Selector struct {
	gate         *debounce.Gate
	clock        debounce.Clock
	flags        *Flags
	gpio         gpio.Driver
	indicatorPin int
}

// NewSelector creates the handler for the joystick switch.
func NewSelector(gate *debounce.Gate, clock debounce.Clock, flags *Flags, g gpio.Driver, indicatorPin int) *Selector {
	return &Selector{
		gate:         gate,
		clock:        clock,
		flags:        flags,
		gpio:         g,
		indicatorPin: indicatorPin,
	}
}

// HandleEdge implements gpio.EdgeHandler. It does not allocate or log, so it
// can run in an interrupt handler.
func (s *Selector) HandleEdge(pin int) {
	if !s.gate.Accept(s.clock()) {
		s.flags.discarded.Add(1)
		return
	}

	level, err := s.gpio.ReadPin(s.indicatorPin)
	if err == nil {
		err = s.gpio.WritePin(s.indicatorPin, !level)
	}
	if err != nil {
		s.flags.faults.Add(1)
	}

	s.flags.flipBorder()
}

// Secondary handles the second push-button. An accepted edge flips the LED
// output enable.
type Secondary struct {
	gate  *debounce.Gate
	clock debounce.Clock
	flags *Flags
}

// NewSecondary creates the handler for the secondary button.
func NewSecondary(gate *debounce.Gate, clock debounce.Clock, flags *Flags) *Secondary {
	return &Secondary{
		gate:  gate,
		clock: clock,
		flags: flags,
	}
}

// HandleEdge implements gpio.EdgeHandler. Same constraints as
// Selector.HandleEdge.
func (s *Secondary) HandleEdge(pin int) {
	if !s.gate.Accept(s.clock()) {
		s.flags.discarded.Add(1)
		return
	}
	s.flags.flipLEDs()
}

// Buttons wires both handlers to their input pins.
type Buttons struct {
	SelectorPin  int
	SecondaryPin int
	IndicatorPin int
}

// Register configures the pins and attaches one handler per source. Both
// handlers share gate, so the debounce window spans the two buttons.
func (b Buttons) Register(g gpio.Driver, gate *debounce.Gate, clock debounce.Clock, flags *Flags) error {
	if err := g.SetupPin(b.IndicatorPin, gpio.Output); err != nil {
		return err
	}
	if err := g.SetupPin(b.SelectorPin, gpio.InputPullUp); err != nil {
		return err
	}
	if err := g.SetupPin(b.SecondaryPin, gpio.InputPullUp); err != nil {
		return err
	}
	if err := g.WatchEdge(b.SelectorPin, gpio.FallingEdge, NewSelector(gate, clock, flags, g, b.IndicatorPin)); err != nil {
		return err
	}
	return g.WatchEdge(b.SecondaryPin, gpio.FallingEdge, NewSecondary(gate, clock, flags))
}
