package core

import "testing"

func TestRuntimeConfigWithDefaults(t *testing.T) {
	got := RuntimeConfig{ScreenW: -3, TickRate: 0}.WithDefaults()
	if got.ScreenW != DefaultScreenW || got.ScreenH != DefaultScreenH || got.TickRate != DefaultTickRate {
		t.Errorf("WithDefaults() = %+v", got)
	}
	if got.Seed == 0 {
		t.Error("zero seed should be replaced")
	}

	set := RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 30, Seed: 7}
	if set.WithDefaults() != set {
		t.Errorf("WithDefaults() changed a complete config: %+v", set.WithDefaults())
	}
}
