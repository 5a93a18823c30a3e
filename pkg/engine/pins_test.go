package engine

import "testing"

func TestPinNumber(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		{"D13", 13},
		{"A2", 102},
		{"GPIO23", 23},
		{"GPIO0", 0},
		{"A0", 100},
		{"7", 7},
		{"XYZ", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := PinNumber(tc.name); got != tc.want {
			t.Errorf("PinNumber(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestGPIOSnapshotDefaultsLow(t *testing.T) {
	snap := GPIOSnapshot{13: High}
	if snap.LevelOf(13) != High {
		t.Errorf("pin 13 should be HIGH")
	}
	if snap.LevelOf(5) != Low {
		t.Errorf("missing pin should default to LOW")
	}
	var nilSnap GPIOSnapshot
	if nilSnap.LevelOf(13) != Low {
		t.Errorf("nil snapshot should default to LOW")
	}
}
