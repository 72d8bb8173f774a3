package joystick

import "fmt"

// CenterConfig describes the rest position of the stick and the band around it
// that produces no output.
type CenterConfig struct {
	Center    int // ADC value at rest (2048 for a 12-bit converter)
	DeadZone  int // half-width of the neutral band around Center
	FullScale int // largest ADC value (4095 for 12 bits)
}

// DefaultCenterConfig returns the values used by the original wiring.
func DefaultCenterConfig() CenterConfig {
	return CenterConfig{
		Center:    2048,
		DeadZone:  200,
		FullScale: 4095,
	}
}

// Validate checks that the dead zone stays strictly inside the ADC range, so
// neither side of the mapping degenerates into a division by zero.
func (c CenterConfig) Validate() error {
	if c.FullScale <= 0 {
		return fmt.Errorf("full scale must be > 0, got %d", c.FullScale)
	}
	if c.DeadZone < 0 {
		return fmt.Errorf("dead zone must be >= 0, got %d", c.DeadZone)
	}
	if c.Center-c.DeadZone <= 0 {
		return fmt.Errorf("center - dead zone must be > 0, got %d", c.Center-c.DeadZone)
	}
	if c.Center+c.DeadZone >= c.FullScale {
		return fmt.Errorf("center + dead zone must be < full scale (%d), got %d", c.FullScale, c.Center+c.DeadZone)
	}
	return nil
}

// Low returns the lower edge of the dead zone.
func (c CenterConfig) Low() int { return c.Center - c.DeadZone }

// High returns the upper edge of the dead zone.
func (c CenterConfig) High() int { return c.Center + c.DeadZone }

// Duty converts one raw sample into a PWM level in [0, wrap].
//
// Below the dead zone the mapping is inverted: sample 0 gives wrap and the
// lower dead-zone edge gives 0. Above the dead zone it rises from 0 at the
// upper edge to wrap at full deflection. Inside the dead zone, or when the
// LEDs are switched off, the result is 0.
func Duty(sample uint16, c CenterConfig, wrap int, active bool) int {
	if !active {
		return 0
	}
	v := int(sample)
	switch {
	case v < c.Low():
		return MapRange(v, 0, c.Low(), wrap, 0)
	case v > c.High():
		return MapRange(v, c.High(), c.FullScale, 0, wrap)
	default:
		return 0
	}
}

// DutyPair holds the levels for the two LED channels.
type DutyPair struct {
	Red  int // driven by the horizontal axis
	Blue int // driven by the vertical axis
}

// Axis bundles the parameters needed to translate both axes into duties.
type Axis struct {
	Center CenterConfig
	Wrap   int
}

// Duties computes both LED levels. The vertical axis drives blue and the
// horizontal axis drives red.
func (a Axis) Duties(vertical, horizontal uint16, active bool) DutyPair {
	return DutyPair{
		Red:  Duty(horizontal, a.Center, a.Wrap, active),
		Blue: Duty(vertical, a.Center, a.Wrap, active),
	}
}
