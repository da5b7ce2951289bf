package effects

import (
	"math"

	"github.com/cwbudde/algo-voice/dsp/spectrum"
)

// dominantBin returns the positive-frequency bin with the largest magnitude.
func dominantBin(in []float64) (int, error) {
	bins, err := spectrum.Forward(in)
	if err != nil {
		return 0, err
	}

	mags := spectrum.Magnitude(bins)
	peak := 1
	for i := 1; i < len(mags)/2; i++ {
		if mags[i] > mags[peak] {
			peak = i
		}
	}
	return peak, nil
}

// bandEnergy sums the power of the bins whose frequency falls in [lo, hi] Hz.
func bandEnergy(in []float64, sampleRate, lo, hi float64) (float64, error) {
	bins, err := spectrum.Forward(in)
	if err != nil {
		return 0, err
	}

	pows := spectrum.Power(bins)
	total := 0.0
	for i := 0; i <= len(bins)/2; i++ {
		f := spectrum.BinFrequency(i, len(bins), sampleRate)
		if f >= lo && f <= hi {
			total += pows[i]
		}
	}
	return total, nil
}

// peakIn returns the largest absolute value of x[lo:hi].
func peakIn(x []float64, lo, hi int) float64 {
	m := 0.0
	for _, v := range x[lo:hi] {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
