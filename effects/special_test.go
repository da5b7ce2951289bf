package effects

import (
	"testing"

	"github.com/cwbudde/algo-voice/internal/testutil"
)

func TestVocoderBandLimitsOutput(t *testing.T) {
	in := testutil.SpeechLike(sampleRate, 4096)

	out, err := Vocoder(in, sampleRate, 200)
	if err != nil {
		t.Fatalf("Vocoder: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("length = %d, want %d", len(out), len(in))
	}
	testutil.RequireFinite(t, out)

	inBand, err := bandEnergy(out, sampleRate, 300, 3000)
	if err != nil {
		t.Fatalf("bandEnergy: %v", err)
	}
	above, err := bandEnergy(out, sampleRate, 8000, 20000)
	if err != nil {
		t.Fatalf("bandEnergy: %v", err)
	}
	if above > inBand {
		t.Fatalf("energy above the band (%v) exceeds band energy (%v)", above, inBand)
	}
}

func TestVocoderEmptyInput(t *testing.T) {
	out, err := Vocoder(nil, sampleRate, 200)
	if err != nil {
		t.Fatalf("Vocoder: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d samples", len(out))
	}
}

func TestMetallicRingModulates(t *testing.T) {
	in := testutil.SpeechLike(sampleRate, 4096)

	out := Metallic(in, sampleRate, 200)
	if len(out) != len(in) {
		t.Fatalf("length = %d, want %d", len(out), len(in))
	}
	testutil.RequireFinite(t, out)

	diff, err := testutil.MaxAbsDiff(out, in)
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}
	if diff == 0 {
		t.Fatal("ring modulation left the signal unchanged")
	}
}

func TestWhisperAddsNoiseAndStripsLows(t *testing.T) {
	w, err := NewWhisper(sampleRate, WithWhisperIntensity(0.7))
	if err != nil {
		t.Fatalf("NewWhisper: %v", err)
	}

	in := testutil.DeterministicSine(100, sampleRate, 0.8, 8192)
	out := w.Process(in)
	if len(out) != len(in) {
		t.Fatalf("length = %d, want %d", len(out), len(in))
	}
	testutil.RequireFinite(t, out)

	// The 100 Hz fundamental sits below the 200 Hz high-pass.
	lowIn, err := bandEnergy(in, sampleRate, 50, 150)
	if err != nil {
		t.Fatalf("bandEnergy: %v", err)
	}
	lowOut, err := bandEnergy(out, sampleRate, 50, 150)
	if err != nil {
		t.Fatalf("bandEnergy: %v", err)
	}
	if lowOut > lowIn/4 {
		t.Fatalf("chest band not stripped: in %v, out %v", lowIn, lowOut)
	}

	// Band-limited breath noise shows up where the sine has nothing.
	breath, err := bandEnergy(out, sampleRate, 1000, 3000)
	if err != nil {
		t.Fatalf("bandEnergy: %v", err)
	}
	if breath == 0 {
		t.Fatal("no breath noise in the 1-3 kHz band")
	}
}

func TestWhisperInvalidIntensity(t *testing.T) {
	if _, err := NewWhisper(sampleRate, WithWhisperIntensity(1.5)); err == nil {
		t.Fatal("expected error for out-of-range intensity")
	}
}

func TestTelephoneNarrowsBand(t *testing.T) {
	tp, err := NewTelephone(sampleRate)
	if err != nil {
		t.Fatalf("NewTelephone: %v", err)
	}

	in := testutil.SpeechLike(sampleRate, 8192)
	out := tp.Process(in)
	if len(out) != len(in) {
		t.Fatalf("length = %d, want %d", len(out), len(in))
	}
	testutil.RequireFinite(t, out)

	// Soft clipping caps the line at 0.7 plus a little hiss.
	if peak := peakIn(out, 0, len(out)); peak > 0.8 {
		t.Fatalf("telephone peak %v exceeds clip level plus noise", peak)
	}

	lowIn, err := bandEnergy(in, sampleRate, 100, 200)
	if err != nil {
		t.Fatalf("bandEnergy: %v", err)
	}
	lowOut, err := bandEnergy(out, sampleRate, 100, 200)
	if err != nil {
		t.Fatalf("bandEnergy: %v", err)
	}
	if lowOut > lowIn {
		t.Fatalf("sub-band energy grew: in %v, out %v", lowIn, lowOut)
	}
}

func TestTelephoneIsDeterministicPerSeed(t *testing.T) {
	in := testutil.SpeechLike(sampleRate, 2048)

	a, err := NewTelephone(sampleRate, WithTelephoneSeed(5))
	if err != nil {
		t.Fatalf("NewTelephone: %v", err)
	}
	b, err := NewTelephone(sampleRate, WithTelephoneSeed(5))
	if err != nil {
		t.Fatalf("NewTelephone: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, a.Process(in), b.Process(in), 0)
}

func TestAlienPreservesLength(t *testing.T) {
	a, err := NewAlien(sampleRate)
	if err != nil {
		t.Fatalf("NewAlien: %v", err)
	}

	in := testutil.SpeechLike(sampleRate, 4096)
	out, err := a.Process(in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("length = %d, want %d", len(out), len(in))
	}
	testutil.RequireFinite(t, out)
}

func TestAlienEmptyInput(t *testing.T) {
	a, err := NewAlien(sampleRate)
	if err != nil {
		t.Fatalf("NewAlien: %v", err)
	}
	out, err := a.Process(nil)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d samples", len(out))
	}
}
