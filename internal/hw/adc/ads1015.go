//go:build !tinygo

package adc

import (
	"fmt"

	"github.com/cjeanneret/JoyGo/internal/debug"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// ADS1015Config describes the external converter used on a Raspberry Pi,
// which has no analog inputs of its own.
type ADS1015Config struct {
	Address   uint16                   // I2C address, 0x48 by default
	FullScale physic.ElectricPotential // voltage mapped to MaxSample (stick supply)
	Channels  int                      // single-ended inputs in use, starting at AIN0
}

// ADS1015 reads single-ended channels of a TI ADS1015 through periph.
type ADS1015 struct {
	cfg      ADS1015Config
	pins     []analog.PinADC
	selected int
}

var singleEnded = []ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

// NewADS1015 opens the converter on bus and prepares one pin per channel.
func NewADS1015(bus i2c.Bus, cfg ADS1015Config) (*ADS1015, error) {
	debug.Info("Initializing ADS1015 ADC at 0x%02x", cfg.Address)

	if cfg.Channels <= 0 || cfg.Channels > len(singleEnded) {
		return nil, fmt.Errorf("ads1015: channels must be 1-%d, got %d", len(singleEnded), cfg.Channels)
	}
	if cfg.FullScale <= 0 {
		return nil, fmt.Errorf("ads1015: full scale must be > 0")
	}

	opts := ads1x15.DefaultOpts
	if cfg.Address != 0 {
		opts.I2cAddress = cfg.Address
	}
	dev, err := ads1x15.NewADS1015(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("ads1015: open: %w", err)
	}

	a := &ADS1015{cfg: cfg}
	for i := 0; i < cfg.Channels; i++ {
		pin, err := dev.PinForChannel(singleEnded[i], cfg.FullScale, 1600*physic.Hertz, ads1x15.BestQuality)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("ads1015: channel %d: %w", i, err)
		}
		a.pins = append(a.pins, pin)
	}
	return a, nil
}

func (a *ADS1015) SelectChannel(ch int) error {
	if ch < 0 || ch >= len(a.pins) {
		return fmt.Errorf("ads1015: channel %d out of range [0, %d)", ch, len(a.pins))
	}
	a.selected = ch
	return nil
}

func (a *ADS1015) ReadChannel() (uint16, error) {
	s, err := a.pins[a.selected].Read()
	if err != nil {
		return 0, fmt.Errorf("ads1015: read channel %d: %w", a.selected, err)
	}
	v := scale(s.V, a.cfg.FullScale)
	debug.ADC("ReadChannel", a.selected, v)
	return v, nil
}

// scale converts a voltage into the 12-bit range used by the mapping code.
func scale(v, fullScale physic.ElectricPotential) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= fullScale {
		return MaxSample
	}
	return uint16(int64(v) * MaxSample / int64(fullScale))
}

func (a *ADS1015) Close() error {
	var first error
	for _, p := range a.pins {
		if err := p.Halt(); err != nil && first == nil {
			first = err
		}
	}
	a.pins = nil
	return first
}
