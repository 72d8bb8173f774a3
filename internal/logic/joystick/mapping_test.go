package joystick

import "testing"

func TestMapRange(t *testing.T) {
	cases := []struct {
		name                                string
		value, minIn, maxIn, minOut, maxOut int
		want                                int
	}{
		{"inverted_low_extreme", 0, 0, 1848, 4095, 0, 4095},
		{"inverted_at_deadzone_edge", 1848, 0, 1848, 4095, 0, 0},
		{"inverted_mid", 1000, 0, 1848, 4095, 0, 1880},
		{"inverted_past_range", 2048, 0, 1848, 4095, 0, -443},
		{"rising_full", 4095, 2248, 4095, 0, 4095, 4095},
		{"rising_mid", 3000, 2248, 4095, 0, 4095, 1667},
		{"rising_first_step", 2249, 2248, 4095, 0, 4095, 2},
		{"screen_x_center", 2048, 0, 4095, 0, 119, 59},
		{"screen_y_center", 2048, 0, 4095, 55, 0, 28},
		{"identity", 17, 0, 100, 0, 100, 17},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapRange(tc.value, tc.minIn, tc.maxIn, tc.minOut, tc.maxOut)
			if got != tc.want {
				t.Errorf("MapRange(%d, %d, %d, %d, %d) = %d, want %d",
					tc.value, tc.minIn, tc.maxIn, tc.minOut, tc.maxOut, got, tc.want)
			}
		})
	}
}

func TestMapRange_TruncatesTowardZero(t *testing.T) {
	// -1/2 truncates to 0, flooring would give -1
	if got := MapRange(1, 0, 2, 0, -1); got != 0 {
		t.Errorf("MapRange(1, 0, 2, 0, -1) = %d, want 0", got)
	}
	// -3/2 truncates to -1, flooring would give -2
	if got := MapRange(-3, 0, 2, 0, 1); got != -1 {
		t.Errorf("MapRange(-3, 0, 2, 0, 1) = %d, want -1", got)
	}
	// 7/2 truncates to 3, rounding would give 4
	if got := MapRange(7, 0, 2, 0, 1); got != 3 {
		t.Errorf("MapRange(7, 0, 2, 0, 1) = %d, want 3", got)
	}
}

func TestMapRange_MatchesFormulaOverSampleRange(t *testing.T) {
	for v := 0; v <= 4095; v += 7 {
		want := (v-0)*(0-55)/(4095-0) + 55
		if got := MapRange(v, 0, 4095, 55, 0); got != want {
			t.Fatalf("MapRange(%d, 0, 4095, 55, 0) = %d, want %d", v, got, want)
		}
	}
}
