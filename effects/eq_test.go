package effects

import (
	"testing"

	"github.com/cwbudde/algo-voice/internal/testutil"
)

func TestEqualizePreservesLength(t *testing.T) {
	in := testutil.SpeechLike(sampleRate, 2048)
	out := Equalize(in, sampleRate, Band{FreqHz: 1000, GainDB: 3}, Band{FreqHz: 3000, GainDB: -2})
	if len(out) != len(in) {
		t.Fatalf("length = %d, want %d", len(out), len(in))
	}
	testutil.RequireFinite(t, out)
}

func TestEqualizeNoBandsCopiesInput(t *testing.T) {
	in := testutil.DeterministicNoise(1, 0.5, 256)
	out := Equalize(in, sampleRate)
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestEqualizeSkipsInvalidBands(t *testing.T) {
	in := testutil.DeterministicNoise(2, 0.5, 256)

	out := Equalize(in, sampleRate,
		Band{FreqHz: -100, GainDB: 6},
		Band{FreqHz: sampleRate, GainDB: 6},
	)
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestEqualizeBoostRaisesBandEnergy(t *testing.T) {
	in := testutil.SpeechLike(sampleRate, 4096)

	// The legacy peaking design centers a band of FreqHz at signal frequency
	// 2*FreqHz, so a 150 Hz band boosts the 300 Hz harmonic.
	out := Equalize(in, sampleRate, Band{FreqHz: 150, GainDB: 6})

	before, err := bandEnergy(in, sampleRate, 250, 350)
	if err != nil {
		t.Fatalf("bandEnergy: %v", err)
	}
	after, err := bandEnergy(out, sampleRate, 250, 350)
	if err != nil {
		t.Fatalf("bandEnergy: %v", err)
	}
	if after <= before {
		t.Fatalf("band not boosted: before %v, after %v", before, after)
	}
}

func TestEqualizeCutLowersBandEnergy(t *testing.T) {
	in := testutil.SpeechLike(sampleRate, 4096)

	out := Equalize(in, sampleRate, Band{FreqHz: 150, GainDB: -6})

	before, err := bandEnergy(in, sampleRate, 250, 350)
	if err != nil {
		t.Fatalf("bandEnergy: %v", err)
	}
	after, err := bandEnergy(out, sampleRate, 250, 350)
	if err != nil {
		t.Fatalf("bandEnergy: %v", err)
	}
	if after >= before {
		t.Fatalf("band not cut: before %v, after %v", before, after)
	}
}
