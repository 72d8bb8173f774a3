// Package toggle holds the two feature flags flipped by the buttons and the
// edge handlers that flip them.
package toggle

import "sync/atomic"

// Flags are shared between edge handlers (writers) and the render loop
// (reader). Each flag is only ever flipped, never assigned.
//
// Handlers may run in interrupt context where nothing can be allocated or
// logged, so they only count what happened. The render loop reports it.
type Flags struct {
	ledsActive    atomic.Bool
	borderVisible atomic.Bool
	discarded     atomic.Uint32 // edges rejected by the debounce gate
	faults        atomic.Uint32 // failed indicator LED writes
}

// NewFlags returns flags in their power-on state: LEDs active, border hidden.
func NewFlags() *Flags {
	f := &Flags{}
	f.ledsActive.Store(true)
	return f
}

// LEDsActive reports whether PWM output is enabled.
func (f *Flags) LEDsActive() bool { return f.ledsActive.Load() }

// BorderVisible reports whether the display border is drawn.
func (f *Flags) BorderVisible() bool { return f.borderVisible.Load() }

// Discarded returns the number of edges rejected by the debounce gate.
func (f *Flags) Discarded() uint32 { return f.discarded.Load() }

// Faults returns the number of indicator LED updates that failed.
func (f *Flags) Faults() uint32 { return f.faults.Load() }

func (f *Flags) flipLEDs() bool { return flip(&f.ledsActive) }

func (f *Flags) flipBorder() bool { return flip(&f.borderVisible) }

// flip inverts b atomically and returns the new value.
func flip(b *atomic.Bool) bool {
	for {
		old := b.Load()
		if b.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
