package effects

import (
	"fmt"
	"math"
)

const defaultAlienSeed = 1

// AlienOption mutates alien-effect construction parameters.
type AlienOption func(*alienConfig) error

type alienConfig struct {
	seed int64
}

// WithAlienSeed sets the random seed for the reverb impulse response.
func WithAlienSeed(seed int64) AlienOption {
	return func(cfg *alienConfig) error {
		cfg.seed = seed
		return nil
	}
}

// Alien layers an otherworldly voice: a 3 Hz amplitude modulation (depth 0.3)
// as a pitch-modulation proxy, a large wet reverb (room 0.8, damping 0.3,
// wet 0.6) and a slow deep chorus (depth 0.7, rate 0.5, wet 0.4), applied in
// that order.
type Alien struct {
	sampleRate float64
	reverb     *Reverb
	chorus     *Chorus
}

// NewAlien creates an alien effect for the given sample rate.
func NewAlien(sampleRate float64, opts ...AlienOption) (*Alien, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("alien sample rate must be > 0: %f", sampleRate)
	}

	cfg := alienConfig{seed: defaultAlienSeed}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	reverb, err := NewReverb(sampleRate,
		WithReverbRoomSize(0.8),
		WithReverbDamping(0.3),
		WithReverbWet(0.6),
		WithReverbSeed(cfg.seed),
	)
	if err != nil {
		return nil, err
	}

	chorus, err := NewChorus(sampleRate,
		WithChorusDepth(0.7),
		WithChorusRate(0.5),
		WithChorusWet(0.4),
	)
	if err != nil {
		return nil, err
	}

	return &Alien{sampleRate: sampleRate, reverb: reverb, chorus: chorus}, nil
}

// Process applies the alien effect and returns a new slice of the input
// length.
func (a *Alien) Process(in []float64) ([]float64, error) {
	if len(in) == 0 {
		return []float64{}, nil
	}

	out := AmplitudeModulate(in, a.sampleRate, 3, 0.3)
	out, err := a.reverb.Process(out)
	if err != nil {
		return nil, err
	}
	return a.chorus.Process(out), nil
}
