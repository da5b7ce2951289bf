package effects

import (
	"github.com/cwbudde/algo-voice/dsp/resample"
	"github.com/cwbudde/algo-voice/dsp/spectrum"
)

// PitchShift shifts the pitch of in by the given factor (1.0 = unchanged,
// 0.5 = octave down, 2.0 = octave up) using linear-interpolation resampling.
// The output always has the input length: resampling to floor(len/factor)
// samples, then zero-padding or truncating back.
//
// A factor of exactly 1 short-circuits to a copy of the input.
func PitchShift(in []float64, factor float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	if factor == 1.0 || len(in) == 0 || factor <= 0 {
		return out
	}

	newLength := int(float64(len(in)) / factor)
	if newLength <= 0 {
		newLength = 1
	}
	return resample.LinearToLength(in, newLength, len(in))
}

// FormantShift scales the formant structure of in by factor via a spectral
// bin remap: every positive-frequency bin i moves to floor(i*factor), bins
// shifted past the spectrum end are discarded, and the real part of the
// inverse transform is returned. A factor of exactly 1 short-circuits.
//
// This is not an envelope-preserving shift and is known to alias; the legacy
// behavior is preserved on purpose.
func FormantShift(in []float64, factor float64) ([]float64, error) {
	out := make([]float64, len(in))
	copy(out, in)
	if factor == 1.0 || len(in) == 0 {
		return out, nil
	}

	bins, err := spectrum.Forward(in)
	if err != nil {
		return nil, err
	}

	shifted := spectrum.RemapPositive(bins, factor)
	return spectrum.InverseReal(shifted, len(in))
}
