package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-voice/internal/testutil"
)

func TestAmplitudeModulateZeroDepthIsIdentity(t *testing.T) {
	in := testutil.DeterministicNoise(1, 0.5, 256)
	out := AmplitudeModulate(in, sampleRate, 5, 0)
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestAmplitudeModulateGainBounds(t *testing.T) {
	in := testutil.DC(1, 44100)
	out := AmplitudeModulate(in, sampleRate, 5, 0.3)

	for i, v := range out {
		if v < 0.7-1e-12 || v > 1.3+1e-12 {
			t.Fatalf("index %d: gain %v outside [0.7, 1.3]", i, v)
		}
	}
}

func TestTremoloNeverBoosts(t *testing.T) {
	in := testutil.DC(1, 44100)
	out := Tremolo(in, sampleRate, 3, 0.4)

	for i, v := range out {
		if v > 1+1e-12 || v < 0.6-1e-12 {
			t.Fatalf("index %d: gain %v outside [0.6, 1]", i, v)
		}
	}
}

func TestSoftClipBounds(t *testing.T) {
	in := []float64{-100, -1, 0, 1, 100}
	out := SoftClip(in, 2, 0.7)

	for i, v := range out {
		if math.Abs(v) > 0.7 {
			t.Fatalf("index %d: %v exceeds level 0.7", i, v)
		}
	}
	if out[2] != 0 {
		t.Fatalf("zero input should clip to zero, got %v", out[2])
	}
	if out[4] < 0.69 {
		t.Fatalf("large input should saturate near the level, got %v", out[4])
	}
}

func TestSoftClipIsOdd(t *testing.T) {
	in := testutil.DeterministicNoise(6, 2, 128)
	neg := make([]float64, len(in))
	for i, v := range in {
		neg[i] = -v
	}

	a := SoftClip(in, 3, 0.8)
	b := SoftClip(neg, 3, 0.8)
	for i := range a {
		if a[i] != -b[i] {
			t.Fatalf("index %d: tanh clipping should be odd-symmetric", i)
		}
	}
}
