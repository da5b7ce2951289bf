package effects

import "math"

// AmplitudeModulate multiplies in by 1 + depth*sin(2*pi*freq*t) and returns a
// new slice. It doubles as the pitch-modulation proxy used by the alien
// voice.
func AmplitudeModulate(in []float64, sampleRate, freq, depth float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		t := float64(i) / sampleRate
		out[i] = v * (1 + depth*math.Sin(2*math.Pi*freq*t))
	}
	return out
}

// Tremolo applies an attenuating amplitude modulation: the gain swings between
// 1-depth and 1, never above unity. Used for the trembling quality of elderly
// and sad voices.
func Tremolo(in []float64, sampleRate, rateHz, depth float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		t := float64(i) / sampleRate
		out[i] = v * (1 - depth*(1+math.Sin(2*math.Pi*rateHz*t))/2)
	}
	return out
}

// SoftClip saturates in through a hyperbolic tangent with the given pre-gain,
// scaling the result by level.
func SoftClip(in []float64, gain, level float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = math.Tanh(v*gain) * level
	}
	return out
}
