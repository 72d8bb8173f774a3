package board

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cjeanneret/JoyGo/internal/config"
	"github.com/cjeanneret/JoyGo/internal/hw/gpio"
)

type fakeClock struct{ now time.Duration }

func (c *fakeClock) Now() time.Duration { return c.now }

func TestLoopConfig_FromDefaults(t *testing.T) {
	rc := LoopConfig(config.Default())
	if rc.VerticalChannel != 0 || rc.HorizontalChannel != 1 {
		t.Errorf("channels = (%d, %d), want (0, 1)", rc.VerticalChannel, rc.HorizontalChannel)
	}
	if rc.BluePin != 12 || rc.RedPin != 13 {
		t.Errorf("pwm pins = (%d, %d), want (12, 13)", rc.BluePin, rc.RedPin)
	}
	if rc.Wrap != 4095 || rc.Period != 100*time.Millisecond {
		t.Errorf("wrap/period = %d/%v, want 4095/100ms", rc.Wrap, rc.Period)
	}
	if rc.Cursor.XMax != 119 || rc.Cursor.YMax != 55 {
		t.Errorf("cursor bounds = (%d, %d), want (119, 55)", rc.Cursor.XMax, rc.Cursor.YMax)
	}
	if rc.Center.Center != 2048 || rc.Center.DeadZone != 200 {
		t.Errorf("center = %+v", rc.Center)
	}
}

func TestOpen_MockBackend(t *testing.T) {
	cfg := config.Default()
	var diag bytes.Buffer
	b, err := Open(cfg, &diag)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()

	if err := b.Run(context.Background(), 2); err != nil {
		t.Fatalf("Run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(diag.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("diagnostic lines = %d, want 2", len(lines))
	}
	want := "VRX: 2048, VRY: 2048, Red PWM: 0, Blue PWM: 0, X: 59, Y: 28"
	if lines[0] != want {
		t.Errorf("line = %q, want %q", lines[0], want)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Defaults.Backend = "arduino"
	if _, err := Open(cfg, nil); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestAssemble_ButtonsDriveTheLoop(t *testing.T) {
	cfg := config.Default()
	bench := NewBench(cfg)
	clock := &fakeClock{now: time.Second}
	b, err := Assemble(cfg, bench.Parts(), clock.Now, nil)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if mode, ok := bench.GPIO.Mode(cfg.Pins.SelectorPin); !ok || mode != gpio.InputPullUp {
		t.Errorf("selector mode = %v (%v), want input-pullup", mode, ok)
	}

	bench.ADC.Set(cfg.Pins.VerticalChannel, 0)
	bench.GPIO.Trigger(cfg.Pins.SelectorPin)
	s, err := b.Loop().Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !s.Border {
		t.Error("border should be visible after a selector press")
	}
	if lvl, _ := bench.GPIO.ReadPin(cfg.Pins.IndicatorPin); lvl != gpio.High {
		t.Error("indicator LED should be on after a selector press")
	}
	if got := bench.PWM.Level(cfg.Pins.BluePin); got != 4095 {
		t.Errorf("blue level = %d, want 4095", got)
	}

	// Within the window: ignored.
	clock.now += 100 * time.Millisecond
	bench.GPIO.Trigger(cfg.Pins.ButtonPin)
	if !b.Flags().LEDsActive() {
		t.Fatal("button press inside the debounce window must be ignored")
	}

	clock.now += 300 * time.Millisecond
	bench.GPIO.Trigger(cfg.Pins.ButtonPin)
	s, err = b.Loop().Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if s.LEDs || bench.PWM.Level(cfg.Pins.BluePin) != 0 {
		t.Errorf("LEDs should be off, snapshot %+v", s)
	}
}

func TestAssemble_RejectsBadLoopConfig(t *testing.T) {
	cfg := config.Default()
	cfg.PWM.Wrap = 0
	bench := NewBench(cfg)
	if _, err := Assemble(cfg, bench.Parts(), (&fakeClock{}).Now, nil); err == nil {
		t.Error("expected error for zero wrap")
	}
}

func TestRun_CanceledContextIsNotAnError(t *testing.T) {
	b, _, err := OpenBench(config.Default(), nil)
	if err != nil {
		t.Fatalf("OpenBench: %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := b.Run(ctx, 0); err != nil {
		t.Errorf("Run on canceled context = %v, want nil", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	b, _, err := OpenBench(config.Default(), nil)
	if err != nil {
		t.Fatalf("OpenBench: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
