package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// AnalyticEnvelope computes the amplitude envelope of in as the magnitude of
// its analytic signal (Hilbert transform via FFT). The result has the same
// length as the input.
func AnalyticEnvelope(in []float64) ([]float64, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("spectrum: envelope input must not be empty")
	}

	bins, err := Forward(in)
	if err != nil {
		return nil, err
	}

	// Single-sideband weighting: keep DC and Nyquist, double the positive
	// frequencies, zero the negative half.
	n := len(bins)
	half := n / 2
	for i := 1; i < half; i++ {
		bins[i] *= 2
	}
	for i := half + 1; i < n; i++ {
		bins[i] = 0
	}

	analytic, err := inverseComplex(bins)
	if err != nil {
		return nil, err
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i := range re {
		re[i] = real(analytic[i])
		im[i] = imag(analytic[i])
	}

	env := make([]float64, len(in))
	vecmath.Magnitude(env, re, im)
	return env, nil
}

func inverseComplex(bins []complex128) ([]complex128, error) {
	plan, err := newPlan(len(bins))
	if err != nil {
		return nil, err
	}

	out := make([]complex128, len(bins))
	if err := plan.Inverse(out, bins); err != nil {
		return nil, fmt.Errorf("spectrum: inverse FFT failed: %w", err)
	}
	return out, nil
}
