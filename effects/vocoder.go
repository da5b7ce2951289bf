package effects

import (
	"math"

	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
	"github.com/cwbudde/algo-voice/dsp/filter/design"
	"github.com/cwbudde/algo-voice/dsp/spectrum"
)

// Vocoder produces a robotic voice: the input's Hilbert envelope rides on a
// square-wave carrier at carrierFreq, scaled by 0.5, then band-passed
// 300-3000 Hz (4th order, zero phase). If the band does not fit below the
// nyquist frequency the modulated signal is returned unfiltered.
func Vocoder(in []float64, sampleRate, carrierFreq float64) ([]float64, error) {
	if len(in) == 0 {
		return []float64{}, nil
	}

	envelope, err := spectrum.AnalyticEnvelope(in)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(in))
	for i := range out {
		t := float64(i) / sampleRate
		carrier := 1.0
		if math.Sin(2*math.Pi*carrierFreq*t) < 0 {
			carrier = -1.0
		}
		out[i] = carrier * envelope[i] * 0.5
	}

	sections := design.ButterworthBP(300, 3000, 4, sampleRate)
	if len(sections) > 0 {
		out = biquad.FiltFilt(out, sections...)
	}
	return out, nil
}
