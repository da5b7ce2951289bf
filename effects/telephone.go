package effects

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
	"github.com/cwbudde/algo-voice/dsp/filter/design"
)

const defaultTelephoneSeed = 1

// TelephoneOption mutates telephone construction parameters.
type TelephoneOption func(*telephoneConfig) error

type telephoneConfig struct {
	seed int64
}

// WithTelephoneSeed sets the random seed for line noise.
func WithTelephoneSeed(seed int64) TelephoneOption {
	return func(cfg *telephoneConfig) error {
		cfg.seed = seed
		return nil
	}
}

// Telephone simulates a narrow-band phone line: band-pass 300-3400 Hz
// (4th order, zero phase), soft clipping at gain 2 scaled to 0.7, and a low
// hiss of Gaussian line noise with standard deviation 0.01.
type Telephone struct {
	sampleRate float64
	rng        *rand.Rand
	band       []biquad.Coefficients
}

// NewTelephone creates a telephone effect for the given sample rate.
func NewTelephone(sampleRate float64, opts ...TelephoneOption) (*Telephone, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("telephone sample rate must be > 0: %f", sampleRate)
	}

	cfg := telephoneConfig{seed: defaultTelephoneSeed}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Telephone{
		sampleRate: sampleRate,
		rng:        rand.New(rand.NewSource(cfg.seed)),
		band:       design.ButterworthBP(300, 3400, 4, sampleRate),
	}, nil
}

// Process applies the telephone effect and returns a new slice of the input
// length.
func (t *Telephone) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	if len(in) == 0 {
		return out
	}

	if len(t.band) > 0 {
		out = biquad.FiltFilt(out, t.band...)
	}
	out = SoftClip(out, 2, 0.7)
	for i := range out {
		out[i] += t.rng.NormFloat64() * 0.01
	}
	return out
}
