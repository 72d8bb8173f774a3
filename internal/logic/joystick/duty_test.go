package joystick

import "testing"

const wrap = 4095

func TestDuty_DeadZoneIsZero(t *testing.T) {
	c := DefaultCenterConfig()
	for v := 1848; v <= 2248; v++ {
		if got := Duty(uint16(v), c, wrap, true); got != 0 {
			t.Fatalf("Duty(%d) = %d, want 0 inside dead zone", v, got)
		}
	}
}

func TestDuty_ForcedOffWhenInactive(t *testing.T) {
	c := DefaultCenterConfig()
	for v := 0; v <= 4095; v++ {
		if got := Duty(uint16(v), c, wrap, false); got != 0 {
			t.Fatalf("Duty(%d, inactive) = %d, want 0", v, got)
		}
	}
}

func TestDuty_Sides(t *testing.T) {
	c := DefaultCenterConfig()
	cases := []struct {
		name   string
		sample uint16
		want   int
	}{
		{"low_extreme", 0, 4095},
		{"low_mid", 1000, 1880},
		{"just_below_deadzone", 1847, 3},
		{"just_above_deadzone", 2249, 2},
		{"high_mid", 3000, 1667},
		{"high_extreme", 4095, 4095},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Duty(tc.sample, c, wrap, true); got != tc.want {
				t.Errorf("Duty(%d) = %d, want %d", tc.sample, got, tc.want)
			}
		})
	}
}

func TestDuty_StaysInRange(t *testing.T) {
	c := DefaultCenterConfig()
	for v := 0; v <= 4095; v++ {
		got := Duty(uint16(v), c, wrap, true)
		if got < 0 || got > wrap {
			t.Fatalf("Duty(%d) = %d, out of [0, %d]", v, got, wrap)
		}
	}
}

func TestAxis_DutiesRouteChannels(t *testing.T) {
	a := Axis{Center: DefaultCenterConfig(), Wrap: wrap}

	got := a.Duties(0, 2048, true)
	if got.Blue != 4095 {
		t.Errorf("Blue = %d, want 4095 (vertical at low extreme)", got.Blue)
	}
	if got.Red != 0 {
		t.Errorf("Red = %d, want 0 (horizontal centered)", got.Red)
	}

	got = a.Duties(2048, 4095, true)
	if got.Red != 4095 || got.Blue != 0 {
		t.Errorf("Duties(2048, 4095) = %+v, want {Red:4095 Blue:0}", got)
	}

	got = a.Duties(0, 4095, false)
	if got.Red != 0 || got.Blue != 0 {
		t.Errorf("inactive Duties = %+v, want zeros", got)
	}
}

func TestCenterConfig_Validate(t *testing.T) {
	if err := DefaultCenterConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	cases := []struct {
		name string
		cfg  CenterConfig
	}{
		{"zero_full_scale", CenterConfig{Center: 2048, DeadZone: 200, FullScale: 0}},
		{"negative_deadzone", CenterConfig{Center: 2048, DeadZone: -1, FullScale: 4095}},
		{"deadzone_reaches_zero", CenterConfig{Center: 200, DeadZone: 200, FullScale: 4095}},
		{"deadzone_reaches_full_scale", CenterConfig{Center: 3900, DeadZone: 195, FullScale: 4095}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
