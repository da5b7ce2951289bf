package effects

import (
	"math"

	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
	"github.com/cwbudde/algo-voice/dsp/filter/design"
)

// Metallic ring-modulates the input against a square-wave carrier at
// carrierFreq, scaled by 0.5, then band-passes 300-3000 Hz (4th order, zero
// phase). Unlike [Vocoder] the input itself rides the carrier, giving a
// harsher, more metallic robot timbre.
func Metallic(in []float64, sampleRate, carrierFreq float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		t := float64(i) / sampleRate
		carrier := 1.0
		if math.Sin(2*math.Pi*carrierFreq*t) < 0 {
			carrier = -1.0
		}
		out[i] = v * carrier * 0.5
	}

	sections := design.ButterworthBP(300, 3000, 4, sampleRate)
	if len(sections) > 0 {
		out = biquad.FiltFilt(out, sections...)
	}
	return out
}
