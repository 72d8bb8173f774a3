package debug

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T, lvl int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	Init(lvl)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		Init(LevelOff)
	})
	return &buf
}

func TestLevels_FilterOutput(t *testing.T) {
	buf := capture(t, LevelLive)

	Info("wiring %d", 22)
	Toggle("border", true)
	Verbose("hidden")
	GPIO("WritePin", 11, true)

	out := buf.String()
	for _, want := range []string{"[JoyGo] ", "[INFO] wiring 22", "[LIVE] border -> true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	for _, unwanted := range []string{"hidden", "[GPIO]"} {
		if strings.Contains(out, unwanted) {
			t.Errorf("output contains %q above level %d", unwanted, LevelLive)
		}
	}
}

func TestOff_PrintsNothing(t *testing.T) {
	buf := capture(t, LevelOff)
	Info("x")
	Error(errors.New("boom"))
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
	if IsEnabled(LevelInfo) {
		t.Error("IsEnabled(LevelInfo) at level 0")
	}
}

func TestTrace_IncludesHardwareOps(t *testing.T) {
	buf := capture(t, LevelTrace)
	PWM("SetLevel", 12, 4095)
	ADC("ReadChannel", 0, 2048)
	out := buf.String()
	if !strings.Contains(out, "[PWM] SetLevel pin=12 value=4095") {
		t.Errorf("missing PWM trace:\n%s", out)
	}
	if !strings.Contains(out, "[ADC] ReadChannel channel=0 value=2048") {
		t.Errorf("missing ADC trace:\n%s", out)
	}
	if Level() != LevelTrace {
		t.Errorf("Level = %d, want %d", Level(), LevelTrace)
	}
}
