// Package conv implements linear convolution for the voice effects.
package conv

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-voice/dsp/spectrum"
)

// ErrEmptyInput is returned when the input signal is empty.
var ErrEmptyInput = errors.New("conv: empty input")

// ErrEmptyKernel is returned when the kernel is empty.
var ErrEmptyKernel = errors.New("conv: empty kernel")

// Full computes the full linear convolution of signal and kernel via a single
// FFT multiply. The result has length len(signal)+len(kernel)-1.
func Full(signal, kernel []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	outputLen := len(signal) + len(kernel) - 1
	fftSize := spectrum.NextPowerOf2(outputLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	sigBuf := make([]complex128, fftSize)
	for i, v := range signal {
		sigBuf[i] = complex(v, 0)
	}
	kernelBuf := make([]complex128, fftSize)
	for i, v := range kernel {
		kernelBuf[i] = complex(v, 0)
	}

	if err := plan.Forward(sigBuf, sigBuf); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	if err := plan.Forward(kernelBuf, kernelBuf); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	for i := range sigBuf {
		sigBuf[i] *= kernelBuf[i]
	}

	if err := plan.Inverse(sigBuf, sigBuf); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	out := make([]float64, outputLen)
	for i := range out {
		out[i] = real(sigBuf[i])
	}
	return out, nil
}

// Same computes the center-aligned convolution of signal and kernel: the full
// linear convolution trimmed to len(signal) samples, dropping (len(kernel)-1)/2
// leading samples. This matches the "same" mode used by the legacy effects.
func Same(signal, kernel []float64) ([]float64, error) {
	full, err := Full(signal, kernel)
	if err != nil {
		return nil, err
	}

	start := (len(kernel) - 1) / 2
	return full[start : start+len(signal)], nil
}
