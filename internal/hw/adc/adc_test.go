package adc

import (
	"testing"

	"periph.io/x/conn/v3/physic"
)

func TestMock_SelectAndRead(t *testing.T) {
	m := NewMock(2, 2048)
	m.Set(0, 100)
	m.Set(1, 3000)

	cases := []struct {
		ch   int
		want uint16
	}{
		{0, 100},
		{1, 3000},
	}
	for _, tc := range cases {
		if err := m.SelectChannel(tc.ch); err != nil {
			t.Fatalf("SelectChannel(%d): %v", tc.ch, err)
		}
		got, err := m.ReadChannel()
		if err != nil {
			t.Fatalf("ReadChannel: %v", err)
		}
		if got != tc.want {
			t.Errorf("channel %d = %d, want %d", tc.ch, got, tc.want)
		}
	}
}

func TestMock_RestsAtCenter(t *testing.T) {
	m := NewMock(2, 2048)
	if got := m.Get(1); got != 2048 {
		t.Errorf("Get(1) = %d, want 2048", got)
	}
}

func TestMock_SetClamps(t *testing.T) {
	m := NewMock(1, 0)
	m.Set(0, 5000)
	if got := m.Get(0); got != MaxSample {
		t.Errorf("Set(5000) stored %d, want %d", got, MaxSample)
	}
	m.Nudge(0, -10000)
	if got := m.Get(0); got != 0 {
		t.Errorf("Nudge below zero stored %d, want 0", got)
	}
}

func TestMock_SelectOutOfRange(t *testing.T) {
	m := NewMock(2, 0)
	if err := m.SelectChannel(2); err == nil {
		t.Error("expected error for channel 2 on a 2-channel mock")
	}
	if err := m.SelectChannel(-1); err == nil {
		t.Error("expected error for negative channel")
	}
}

func TestMock_NoChannels(t *testing.T) {
	m := NewMock(0, 0)
	if _, err := m.ReadChannel(); err == nil {
		t.Error("expected error reading a converter with no channels")
	}
}

func TestScale(t *testing.T) {
	fs := 3300 * physic.MilliVolt
	cases := []struct {
		name string
		v    physic.ElectricPotential
		want uint16
	}{
		{"negative", -10 * physic.MilliVolt, 0},
		{"zero", 0, 0},
		{"half", 1650 * physic.MilliVolt, 2047},
		{"full", fs, MaxSample},
		{"over", 4 * physic.Volt, MaxSample},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scale(tc.v, fs); got != tc.want {
				t.Errorf("scale(%v) = %d, want %d", tc.v, got, tc.want)
			}
		})
	}
}
