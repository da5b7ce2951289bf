package design

import (
	"math"

	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
)

// ButterworthLP designs a lowpass Butterworth cascade of the given order.
// Odd orders are rounded up to the next even order. An out-of-range cutoff
// yields nil (skip).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || !ValidFrequency(freq, sampleRate) {
		return nil
	}
	if order%2 != 0 {
		order++
	}

	sections := make([]biquad.Coefficients, 0, order/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, lowpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}
	return sections
}

// ButterworthHP designs a highpass Butterworth cascade of the given order.
// Odd orders are rounded up to the next even order. An out-of-range cutoff
// yields nil (skip).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 || !ValidFrequency(freq, sampleRate) {
		return nil
	}
	if order%2 != 0 {
		order++
	}

	sections := make([]biquad.Coefficients, 0, order/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, highpassRBJ(freq, butterworthQ(order, i), sampleRate))
	}
	return sections
}

// ButterworthBP designs a band-pass cascade as a highpass at lowFreq followed
// by a lowpass at highFreq, each of the given order. Both edges must be valid
// or the result is nil (skip).
func ButterworthBP(lowFreq, highFreq float64, order int, sampleRate float64) []biquad.Coefficients {
	if !ValidFrequency(lowFreq, sampleRate) || !ValidFrequency(highFreq, sampleRate) {
		return nil
	}
	if lowFreq >= highFreq {
		return nil
	}

	hp := ButterworthHP(lowFreq, order, sampleRate)
	lp := ButterworthLP(highFreq, order, sampleRate)
	return append(hp, lp...)
}

// butterworthQ returns the quality factor for a Butterworth filter section.
// index ranges from 0 to (order/2 - 1) for the biquad sections.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return 1 / math.Sqrt2
	}

	return 1 / (2 * s)
}
