package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cjeanneret/JoyGo/internal/hw/adc"
)

// Backends selectable with defaults.backend.
const (
	BackendMock = "mock" // in-memory collaborators, for development on PC
	BackendRPi  = "rpi"  // Raspberry Pi: go-rpio GPIO/PWM, periph I2C ADC and OLED
)

// PinsConfig holds the wiring. GPIO numbers are BCM on a Raspberry Pi and GP
// numbers on a Pico.
type PinsConfig struct {
	SelectorPin       int `yaml:"selector_pin"`       // joystick push switch (SW), active LOW
	ButtonPin         int `yaml:"button_pin"`         // secondary push-button, active LOW
	IndicatorPin      int `yaml:"indicator_pin"`      // green LED toggled by the selector
	BluePin           int `yaml:"blue_pin"`           // PWM, vertical axis
	RedPin            int `yaml:"red_pin"`            // PWM, horizontal axis
	VerticalChannel   int `yaml:"vertical_channel"`   // ADC channel of VRY
	HorizontalChannel int `yaml:"horizontal_channel"` // ADC channel of VRX
}

// JoystickConfig describes the analog stick.
type JoystickConfig struct {
	Center    int `yaml:"center"`     // ADC value at rest
	DeadZone  int `yaml:"dead_zone"`  // half-width of the neutral band
	FullScale int `yaml:"full_scale"` // largest ADC value
}

// DebounceConfig configures the shared button debounce window.
type DebounceConfig struct {
	WindowMs int `yaml:"window_ms"`
}

// DisplayConfig describes the OLED panel.
type DisplayConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Address    uint16 `yaml:"address"`     // I2C address (0x3C)
	CursorSize int    `yaml:"cursor_size"` // side of the square cursor in pixels
}

// PWMConfig configures the LED outputs.
type PWMConfig struct {
	Wrap   uint32 `yaml:"wrap"`    // counter top, highest duty value
	FreqHz int    `yaml:"freq_hz"` // output frequency (Raspberry Pi backend)
}

// ADCConfig describes the external converter used by the rpi backend.
type ADCConfig struct {
	Address     uint16 `yaml:"address"`      // ADS1015 I2C address
	FullScaleMv int    `yaml:"full_scale_mv"` // stick supply voltage in millivolts
}

// LoopConfig configures the render cadence.
type LoopConfig struct {
	PeriodMs int `yaml:"period_ms"`
}

// DefaultsConfig contains generic runtime parameters.
type DefaultsConfig struct {
	DebugLevel int    `yaml:"debug_level"` // debug level 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	Backend    string `yaml:"backend"`     // "mock" or "rpi"
	I2CBus     string `yaml:"i2c_bus"`     // periph bus name, "" = first available
}

// Config aggregates all application configuration.
type Config struct {
	Pins     PinsConfig     `yaml:"pins"`
	Joystick JoystickConfig `yaml:"joystick"`
	Debounce DebounceConfig `yaml:"debounce"`
	Display  DisplayConfig  `yaml:"display"`
	PWM      PWMConfig      `yaml:"pwm"`
	ADC      ADCConfig      `yaml:"adc"`
	Loop     LoopConfig     `yaml:"loop"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// Default returns the configuration matching the original wiring.
func Default() *Config {
	return &Config{
		Pins: PinsConfig{
			SelectorPin:       22,
			ButtonPin:         5,
			IndicatorPin:      11,
			BluePin:           12,
			RedPin:            13,
			VerticalChannel:   0,
			HorizontalChannel: 1,
		},
		Joystick: JoystickConfig{Center: 2048, DeadZone: 200, FullScale: 4095},
		Debounce: DebounceConfig{WindowMs: 250},
		Display:  DisplayConfig{Width: 128, Height: 64, Address: 0x3C, CursorSize: 8},
		PWM:      PWMConfig{Wrap: 4095, FreqHz: 1000},
		ADC:      ADCConfig{Address: 0x48, FullScaleMv: 3300},
		Loop:     LoopConfig{PeriodMs: 100},
		Defaults: DefaultsConfig{DebugLevel: 0, Backend: BackendMock, I2CBus: "1"},
	}
}

// ValidateConfigPath checks that path names a .yaml file directly inside a
// directory called "configs" and contains no traversal.
func ValidateConfigPath(path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	for _, elem := range strings.Split(filepath.ToSlash(path), "/") {
		if elem == ".." {
			return fmt.Errorf("config path %q must not contain '..'", path)
		}
	}
	clean := filepath.Clean(path)
	if filepath.Ext(clean) != ".yaml" {
		return fmt.Errorf("config path %q must have .yaml extension", path)
	}
	if filepath.Base(filepath.Dir(clean)) != "configs" {
		return fmt.Errorf("config path %q must be inside a configs/ directory", path)
	}
	return nil
}

// Load reads a YAML file and returns the configuration. Missing fields keep
// the values from Default.
func Load(path string) (*Config, error) {
	if err := ValidateConfigPath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and fills zero values with defaults.
func (c *Config) Validate() error {
	def := Default()

	if c.Defaults.Backend == "" {
		c.Defaults.Backend = def.Defaults.Backend
	}
	if c.Defaults.Backend != BackendMock && c.Defaults.Backend != BackendRPi {
		return fmt.Errorf("backend must be %q or %q, got %q", BackendMock, BackendRPi, c.Defaults.Backend)
	}
	if c.Defaults.DebugLevel < 0 || c.Defaults.DebugLevel > 4 {
		return fmt.Errorf("debug_level must be between 0 and 4, got %d", c.Defaults.DebugLevel)
	}

	if c.Joystick.FullScale <= 0 {
		c.Joystick.FullScale = def.Joystick.FullScale
	}
	if c.Joystick.FullScale != adc.MaxSample {
		return fmt.Errorf("full_scale must be %d (12-bit converter), got %d", adc.MaxSample, c.Joystick.FullScale)
	}
	if c.Joystick.Center <= 0 {
		c.Joystick.Center = c.Joystick.FullScale/2 + 1
	}
	if c.Joystick.DeadZone < 0 {
		return fmt.Errorf("dead_zone must be >= 0, got %d", c.Joystick.DeadZone)
	}
	if lo, hi := c.Joystick.Center-c.Joystick.DeadZone, c.Joystick.Center+c.Joystick.DeadZone; lo <= 0 || hi >= c.Joystick.FullScale {
		return fmt.Errorf("dead zone [%d, %d] must lie strictly inside [0, %d]", lo, hi, c.Joystick.FullScale)
	}

	if c.Debounce.WindowMs <= 0 {
		c.Debounce.WindowMs = def.Debounce.WindowMs
	}
	if c.Loop.PeriodMs <= 0 {
		c.Loop.PeriodMs = def.Loop.PeriodMs
	}

	if c.Display.Width <= 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.Height <= 0 {
		c.Display.Height = def.Display.Height
	}
	if c.Display.CursorSize <= 0 {
		c.Display.CursorSize = def.Display.CursorSize
	}
	if c.Display.Address == 0 {
		c.Display.Address = def.Display.Address
	}
	if c.Display.CursorSize+1 >= c.Display.Width || c.Display.CursorSize+1 >= c.Display.Height {
		return fmt.Errorf("cursor_size %d does not fit a %dx%d display", c.Display.CursorSize, c.Display.Width, c.Display.Height)
	}

	if c.PWM.Wrap == 0 {
		c.PWM.Wrap = def.PWM.Wrap
	}
	if c.PWM.FreqHz <= 0 {
		c.PWM.FreqHz = def.PWM.FreqHz
	}
	if c.ADC.Address == 0 {
		c.ADC.Address = def.ADC.Address
	}
	if c.ADC.FullScaleMv <= 0 {
		c.ADC.FullScaleMv = def.ADC.FullScaleMv
	}

	if c.Pins.VerticalChannel < 0 || c.Pins.HorizontalChannel < 0 {
		return fmt.Errorf("adc channels must be >= 0, got vertical_channel %d and horizontal_channel %d",
			c.Pins.VerticalChannel, c.Pins.HorizontalChannel)
	}
	if c.Pins.VerticalChannel == c.Pins.HorizontalChannel {
		return fmt.Errorf("vertical_channel and horizontal_channel must differ, both are %d", c.Pins.VerticalChannel)
	}
	return c.Pins.checkDistinct()
}

// checkDistinct rejects a GPIO number used by two roles.
func (p PinsConfig) checkDistinct() error {
	pins := []struct {
		name string
		pin  int
	}{
		{"selector_pin", p.SelectorPin},
		{"button_pin", p.ButtonPin},
		{"indicator_pin", p.IndicatorPin},
		{"blue_pin", p.BluePin},
		{"red_pin", p.RedPin},
	}
	for i, a := range pins {
		if a.pin < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", a.name, a.pin)
		}
		for _, b := range pins[i+1:] {
			if a.pin == b.pin {
				return fmt.Errorf("%s and %s must differ, both are %d", a.name, b.name, a.pin)
			}
		}
	}
	return nil
}

// Period returns the pause between two render iterations.
func (c *Config) Period() time.Duration {
	return time.Duration(c.Loop.PeriodMs) * time.Millisecond
}

// DebounceWindow returns the minimum spacing between accepted button edges.
func (c *Config) DebounceWindow() time.Duration {
	return time.Duration(c.Debounce.WindowMs) * time.Millisecond
}
