// Package design builds biquad coefficients for the voice engine's filters.
//
// All designers return the zero Coefficients value when the requested
// frequency does not map to a usable normalized frequency. Callers treat a
// zero section as "skip this stage"; an out-of-range cutoff silently passes
// the signal through instead of failing (legacy behavior).
package design

import (
	"math"

	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
)

// ValidFrequency reports whether freq maps strictly inside (0, nyquist).
func ValidFrequency(freq, sampleRate float64) bool {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return false
	}
	return freq > 0 && freq < sampleRate/2 && !math.IsNaN(freq) && !math.IsInf(freq, 0)
}

// Peaking designs a peaking-EQ biquad with gain in dB and Q = 1.
//
// This follows the legacy convention where the angular frequency is taken
// relative to the Nyquist rate, w0 = 2*pi*freq/nyquist, and the linear gain
// is A = 10^(gainDB/20). It is intentionally not the RBJ cookbook form; the
// voice transforms were tuned against this response.
func Peaking(freq, gainDB, sampleRate float64) biquad.Coefficients {
	if !ValidFrequency(freq, sampleRate) {
		return biquad.Coefficients{}
	}

	const q = 1.0
	normalized := freq / (sampleRate / 2)
	w0 := 2 * math.Pi * normalized
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/20)

	b0 := 1 + alpha*a
	b1 := -2 * math.Cos(w0)
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * math.Cos(w0)
	a2 := 1 - alpha/a

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// lowpassRBJ designs a lowpass biquad at freq (Hz) with quality factor q.
func lowpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// highpassRBJ designs a highpass biquad at freq (Hz) with quality factor q.
func highpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := (1 + cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if !ValidFrequency(freq, sampleRate) {
		return 0, false
	}
	return 2 * math.Pi * freq / sampleRate, true
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
