package biquad

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-voice/internal/testutil"
)

func identityCoefficients() Coefficients {
	return Coefficients{B0: 1}
}

func TestIdentitySectionPassesThrough(t *testing.T) {
	in := testutil.DeterministicNoise(7, 0.5, 256)
	buf := make([]float64, len(in))
	copy(buf, in)

	s := NewSection(identityCoefficients())
	s.ProcessBlock(buf)

	testutil.RequireSliceNearlyEqual(t, buf, in, 0)
}

func TestSectionImpulseResponse(t *testing.T) {
	// One-pole-equivalent section y[n] = x[n] + 0.5*y[n-1].
	c := Coefficients{B0: 1, A1: -0.5}
	s := NewSection(c)

	buf := testutil.Impulse(8, 0)
	s.ProcessBlock(buf)

	want := make([]float64, 8)
	for i := range want {
		want[i] = math.Pow(0.5, float64(i))
	}
	testutil.RequireSliceNearlyEqual(t, buf, want, 1e-12)
}

func TestSectionReset(t *testing.T) {
	c := Coefficients{B0: 1, A1: -0.5}
	s := NewSection(c)

	first := testutil.Impulse(16, 0)
	s.ProcessBlock(first)

	s.Reset()
	second := testutil.Impulse(16, 0)
	s.ProcessBlock(second)

	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func TestChainSkipsZeroSections(t *testing.T) {
	c := NewChain(Coefficients{}, identityCoefficients(), Coefficients{})
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}

func TestChainCascadeOrder(t *testing.T) {
	// Two identical sections in cascade must equal one section applied twice.
	c := Coefficients{B0: 0.5, B1: 0.5}

	single := NewSection(c)
	expected := testutil.Impulse(32, 0)
	single.ProcessBlock(expected)
	single.Reset()
	single.ProcessBlock(expected)

	// Fresh state per section, unlike re-running one section.
	chain := NewChain(c, c)
	got := testutil.Impulse(32, 0)
	chain.ProcessBlock(got)

	testutil.RequireSliceNearlyEqual(t, got, expected, 1e-12)
}

func TestFiltFiltPreservesLengthAndInput(t *testing.T) {
	in := testutil.DeterministicSine(440, 44100, 0.5, 512)
	inCopy := make([]float64, len(in))
	copy(inCopy, in)

	out := FiltFilt(in, Coefficients{B0: 0.5, B1: 0.5})
	if len(out) != len(in) {
		t.Fatalf("length changed: got %d, want %d", len(out), len(in))
	}
	testutil.RequireSliceNearlyEqual(t, in, inCopy, 0)
}

func TestFiltFiltZeroCoefficientsCopiesInput(t *testing.T) {
	in := testutil.DeterministicNoise(3, 1, 64)
	out := FiltFilt(in, Coefficients{})
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestFiltFiltDCGain(t *testing.T) {
	// A unity-DC-gain smoother must leave a constant signal unchanged away
	// from the edges.
	in := testutil.DC(0.7, 400)
	out := FiltFilt(in, Coefficients{B0: 0.5, B1: 0.5})

	for i := 50; i < 350; i++ {
		if math.Abs(out[i]-0.7) > 1e-9 {
			t.Fatalf("index %d: got %v, want 0.7", i, out[i])
		}
	}
}

func TestFiltFiltEmptyInput(t *testing.T) {
	out := FiltFilt(nil, identityCoefficients())
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d samples", len(out))
	}
}
