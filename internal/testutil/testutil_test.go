package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	out := DeterministicSine(441, 44100, 0.5, 100)
	if len(out) != 100 {
		t.Fatalf("length = %d, want 100", len(out))
	}
	if out[0] != 0 {
		t.Fatalf("first sample = %v, want 0", out[0])
	}
	if out[25] <= 0 {
		t.Fatalf("quarter-period sample = %v, want > 0", out[25])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(1, 0.5, 64)
	b := DeterministicNoise(1, 0.5, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %d", i)
		}
		if math.Abs(a[i]) > 0.5 {
			t.Fatalf("sample %v exceeds amplitude", a[i])
		}
	}
}

func TestImpulse(t *testing.T) {
	out := Impulse(8, 3)
	for i, v := range out {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("index %d: got %v, want %v", i, v, want)
		}
	}

	// Out-of-range positions yield silence.
	for _, v := range Impulse(4, 10) {
		if v != 0 {
			t.Fatal("out-of-range impulse should be silent")
		}
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiff(t *testing.T) {
	diff, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}
	if diff != 1 {
		t.Fatalf("diff = %v, want 1", diff)
	}
}
