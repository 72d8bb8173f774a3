package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/JoyGo/internal/board"
	"github.com/cjeanneret/JoyGo/internal/config"
	"github.com/cjeanneret/JoyGo/internal/debug"
	"github.com/cjeanneret/JoyGo/internal/sim"
)

// noDebugOverride means "keep defaults.debug_level from the config file".
const noDebugOverride = -1

type options struct {
	configPath string
	backend    string
	frames     int
	debugLevel int
	logPath    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "joygo",
		Short: "JoyGo - analog joystick to LEDs and OLED cursor",
		Long: `JoyGo samples a two-axis analog joystick, drives two PWM LEDs from the
stick deflection and moves a square cursor on a 128x64 SSD1306 display.
The joystick switch toggles a border and a green LED, a second button
switches the PWM LEDs on and off.

Use the "mock" backend (default) to run without hardware, or "sim" for an
interactive terminal simulator.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", filepath.Join("configs", "default.yaml"), "path to config file")
	rootCmd.PersistentFlags().IntVar(&opts.debugLevel, "debug-level", noDebugOverride, "override debug level (0-4)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the control loop on the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoop(cmd, opts)
		},
	}
	runCmd.Flags().StringVar(&opts.backend, "backend", "", `override backend ("mock" or "rpi")`)
	runCmd.Flags().IntVar(&opts.frames, "frames", 0, "stop after this many iterations (0 = run until interrupted)")

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "Drive the mock backend from the keyboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(opts)
		},
	}
	simCmd.Flags().StringVar(&opts.logPath, "log", "", "write debug output to this file")

	rootCmd.AddCommand(runCmd, simCmd)
	return rootCmd
}

// loadConfig reads the config file and applies the command line overrides.
func loadConfig(opts *options) (*config.Config, error) {
	if err := validateOverrides(opts.backend, opts.debugLevel, opts.frames); err != nil {
		return nil, fmt.Errorf("invalid CLI override: %w", err)
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	applyOverrides(cfg, opts.backend, opts.debugLevel)
	return cfg, nil
}

func runLoop(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	debug.Init(cfg.Defaults.DebugLevel)
	debug.Section("Initialization")
	debug.Value("Config path", opts.configPath)
	debug.Value("Debug level", cfg.Defaults.DebugLevel)
	debug.PrintStruct("Pins", cfg.Pins)

	b, err := board.Open(cfg, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("init board failed: %w", err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			debug.Error(fmt.Errorf("closing board failed: %w", err))
		}
	}()

	return b.Run(ctx, opts.frames)
}

func runSim(opts *options) error {
	// The simulator only exists on the mock backend.
	opts.backend = config.BackendMock
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	debug.Init(cfg.Defaults.DebugLevel)

	if opts.logPath == "" {
		return sim.Run(cfg, nil)
	}
	f, err := os.Create(opts.logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	return sim.Run(cfg, f)
}

// validateOverrides checks the command line overrides. Empty or sentinel
// values mean "use config".
func validateOverrides(backend string, debugLevel, frames int) error {
	switch backend {
	case "", config.BackendMock, config.BackendRPi:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", config.BackendMock, config.BackendRPi, backend)
	}
	if debugLevel != noDebugOverride && (debugLevel < 0 || debugLevel > 4) {
		return fmt.Errorf("debug-level must be between 0 and 4, got %d", debugLevel)
	}
	if frames < 0 {
		return fmt.Errorf("frames must be >= 0, got %d", frames)
	}
	return nil
}

// applyOverrides mutates cfg with the non-empty overrides.
func applyOverrides(cfg *config.Config, backend string, debugLevel int) {
	if backend != "" {
		cfg.Defaults.Backend = backend
	}
	if debugLevel != noDebugOverride {
		cfg.Defaults.DebugLevel = debugLevel
	}
}
