// Package i2cbus opens the host I2C bus shared by the display and the ADC.
package i2cbus

import (
	"fmt"
	"sync"

	"github.com/cjeanneret/JoyGo/internal/debug"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var (
	initOnce sync.Once
	initErr  error
)

// Open initializes the periph host drivers (once per process) and opens the
// named bus. An empty name selects the first bus found, "1" is the header
// bus on a Raspberry Pi.
func Open(name string) (i2c.BusCloser, error) {
	initOnce.Do(func() {
		debug.Info("Initializing periph host drivers")
		if _, err := host.Init(); err != nil {
			initErr = fmt.Errorf("periph host init: %w", err)
		}
	})
	if initErr != nil {
		return nil, initErr
	}

	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}
	debug.Value("I2C bus", bus.String())
	return bus, nil
}
