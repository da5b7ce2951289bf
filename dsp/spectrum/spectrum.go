// Package spectrum provides FFT helpers for the voice engine.
//
// FFT plans come from github.com/MeKo-Christian/algo-fft, which operates on
// power-of-two sizes; inputs of other lengths are zero-padded up to the next
// power of two, as elsewhere in this code base. Magnitude and power spectra
// use the SIMD kernels in github.com/cwbudde/algo-vecmath.
package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

func newPlan(fftSize int) (*algofft.Plan[complex128], error) {
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}
	return plan, nil
}

// Forward computes the DFT of in, zero-padded to the next power of two.
// The returned bin slice has the padded length.
func Forward(in []float64) ([]complex128, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("spectrum: forward input must not be empty")
	}

	fftSize := NextPowerOf2(len(in))
	plan, err := newPlan(fftSize)
	if err != nil {
		return nil, err
	}

	buf := make([]complex128, fftSize)
	for i, v := range in {
		buf[i] = complex(v, 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}
	return buf, nil
}

// InverseReal computes the inverse DFT of bins and returns the real part of
// the first n samples. The bin count must be a power of two (as produced by
// [Forward]).
func InverseReal(bins []complex128, n int) ([]float64, error) {
	if len(bins) == 0 {
		return nil, fmt.Errorf("spectrum: inverse input must not be empty")
	}
	if n <= 0 || n > len(bins) {
		return nil, fmt.Errorf("spectrum: inverse output length out of range: %d", n)
	}

	plan, err := newPlan(len(bins))
	if err != nil {
		return nil, err
	}

	buf := make([]complex128, len(bins))
	if err := plan.Inverse(buf, bins); err != nil {
		return nil, fmt.Errorf("spectrum: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(buf[i])
	}
	return out, nil
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	return out
}

// BinFrequency returns the center frequency in Hz of bin i for the given FFT
// size and sample rate. Bins past fftSize/2 alias to negative frequencies.
func BinFrequency(i, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return 0
	}
	if i > fftSize/2 {
		i -= fftSize
	}
	return float64(i) * sampleRate / float64(fftSize)
}

// NextPowerOf2 returns the next power of 2 >= n.
func NextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
