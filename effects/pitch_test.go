package effects

import (
	"testing"

	"github.com/cwbudde/algo-voice/internal/testutil"
)

const sampleRate = 44100.0

func TestPitchShiftPreservesLength(t *testing.T) {
	in := testutil.DeterministicSine(220, sampleRate, 0.5, 1024)

	for _, factor := range []float64{0.5, 0.7, 0.85, 1.0, 1.2, 1.5, 2.0} {
		out := PitchShift(in, factor)
		if len(out) != len(in) {
			t.Fatalf("factor %v: length %d, want %d", factor, len(out), len(in))
		}
		testutil.RequireFinite(t, out)
	}
}

func TestPitchShiftUnityIsIdentity(t *testing.T) {
	in := testutil.DeterministicNoise(1, 0.5, 512)
	out := PitchShift(in, 1.0)
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestPitchShiftUpTruncates(t *testing.T) {
	// Factor 2 compresses the signal into the first half; the tail is padded
	// with zeros.
	in := testutil.DC(1, 100)
	out := PitchShift(in, 2.0)

	if out[10] != 1 {
		t.Fatalf("compressed region should keep the signal, got %v", out[10])
	}
	for i := 50; i < 100; i++ {
		if out[i] != 0 {
			t.Fatalf("index %d: tail should be zero-padded, got %v", i, out[i])
		}
	}
}

func TestPitchShiftDownKeepsFullBlock(t *testing.T) {
	// Factor 0.5 stretches to twice the length and truncates back, so every
	// output sample stays on the signal.
	in := testutil.DC(1, 100)
	out := PitchShift(in, 0.5)
	testutil.RequireSliceNearlyEqual(t, out, in, 1e-12)
}

func TestPitchShiftInvalidFactor(t *testing.T) {
	in := testutil.DeterministicNoise(2, 0.5, 64)
	out := PitchShift(in, -1)
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestPitchShiftEmptyInput(t *testing.T) {
	if out := PitchShift(nil, 0.5); len(out) != 0 {
		t.Fatalf("expected empty output, got %d samples", len(out))
	}
}

func TestFormantShiftPreservesLength(t *testing.T) {
	in := testutil.SpeechLike(sampleRate, 1024)

	for _, factor := range []float64{0.8, 0.85, 1.0, 1.2} {
		out, err := FormantShift(in, factor)
		if err != nil {
			t.Fatalf("factor %v: %v", factor, err)
		}
		if len(out) != len(in) {
			t.Fatalf("factor %v: length %d, want %d", factor, len(out), len(in))
		}
		testutil.RequireFinite(t, out)
	}
}

func TestFormantShiftUnityIsIdentity(t *testing.T) {
	in := testutil.DeterministicNoise(3, 0.5, 777)
	out, err := FormantShift(in, 1.0)
	if err != nil {
		t.Fatalf("FormantShift: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestFormantShiftMovesSpectralPeak(t *testing.T) {
	// Remapping by 0.5 sends bin i to floor(i/2) with later sources
	// overwriting earlier ones. A tone on an odd bin survives the collision
	// (its even neighbor above maps one bin further up), so bin 63 lands on
	// bin 31.
	const n = 1024
	in := testutil.DeterministicSine(63, float64(n), 1.0, n)

	out, err := FormantShift(in, 0.5)
	if err != nil {
		t.Fatalf("FormantShift: %v", err)
	}

	peakBin, err := dominantBin(out)
	if err != nil {
		t.Fatalf("dominantBin: %v", err)
	}
	if peakBin != 31 {
		t.Fatalf("dominant bin = %d, want 31", peakBin)
	}
}

func TestFormantShiftWipesEvenBinTone(t *testing.T) {
	// A tone on an even bin is overwritten in the collision: bins 64 and 65
	// both target bin 32 and the empty bin 65 writes last.
	const n = 1024
	in := testutil.DeterministicSine(64, float64(n), 1.0, n)

	out, err := FormantShift(in, 0.5)
	if err != nil {
		t.Fatalf("FormantShift: %v", err)
	}
	if peak := peakIn(out, 0, len(out)); peak > 1e-6 {
		t.Fatalf("even-bin tone should vanish at factor 0.5, residual peak %v", peak)
	}
}
