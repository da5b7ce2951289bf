package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/internal/testutil"
)

func TestSine(t *testing.T) {
	g := NewGenerator([]core.ProcessorOption{core.WithSampleRate(1024)})

	out, err := g.Sine(64, 0.5, 1024)
	if err != nil {
		t.Fatalf("Sine: %v", err)
	}
	if len(out) != 1024 {
		t.Fatalf("length = %d, want 1024", len(out))
	}
	if out[0] != 0 {
		t.Fatalf("sine should start at zero, got %v", out[0])
	}
	if peak := core.MaxAbs(out); math.Abs(peak-0.5) > 1e-9 {
		t.Fatalf("peak = %v, want 0.5", peak)
	}
}

func TestSineInvalidArgs(t *testing.T) {
	g := NewGenerator(nil)
	if _, err := g.Sine(440, 1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
}

func TestSquareValues(t *testing.T) {
	g := NewGenerator([]core.ProcessorOption{core.WithSampleRate(1000)})

	out, err := g.Square(100, 0.8, 200)
	if err != nil {
		t.Fatalf("Square: %v", err)
	}
	for i, v := range out {
		if v != 0.8 && v != -0.8 {
			t.Fatalf("index %d: square value %v not at +-amplitude", i, v)
		}
	}
}

func TestGaussianNoiseDeterminism(t *testing.T) {
	a := NewGenerator(nil, WithSeed(7))
	b := NewGenerator(nil, WithSeed(7))

	na, err := a.GaussianNoise(0.1, 256)
	if err != nil {
		t.Fatalf("GaussianNoise: %v", err)
	}
	nb, err := b.GaussianNoise(0.1, 256)
	if err != nil {
		t.Fatalf("GaussianNoise: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, na, nb, 0)

	c := NewGenerator(nil, WithSeed(8))
	nc, err := c.GaussianNoise(0.1, 256)
	if err != nil {
		t.Fatalf("GaussianNoise: %v", err)
	}
	diff, err := testutil.MaxAbsDiff(na, nc)
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}
	if diff == 0 {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestGaussianNoiseZeroStdDev(t *testing.T) {
	g := NewGenerator(nil)
	out, err := g.GaussianNoise(0, 64)
	if err != nil {
		t.Fatalf("GaussianNoise: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out, make([]float64, 64), 0)
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{0.1, -0.4, 0.2}, 0.8)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if peak := core.MaxAbs(out); math.Abs(peak-0.8) > 1e-12 {
		t.Fatalf("peak = %v, want 0.8", peak)
	}
}

func TestNormalizeSilenceStaysSilent(t *testing.T) {
	out, err := Normalize(make([]float64, 16), 0.8)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out, make([]float64, 16), 0)
}

func TestNormalizeInvalidArgs(t *testing.T) {
	if _, err := Normalize(nil, 0.8); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Normalize([]float64{1}, -1); err == nil {
		t.Fatal("expected error for negative target peak")
	}
}
