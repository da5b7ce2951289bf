package effects

import (
	"fmt"
	"math"
	"math/rand"
)

const defaultEmotionSeed = 1

// EmotionOption mutates emotion modulator construction parameters.
type EmotionOption func(*emotionConfig) error

type emotionConfig struct {
	seed int64
}

// WithEmotionSeed sets the random seed for breathiness noise.
func WithEmotionSeed(seed int64) EmotionOption {
	return func(cfg *emotionConfig) error {
		cfg.seed = seed
		return nil
	}
}

// EmotionModulator colors a voice with one of four fixed emotion recipes.
// Each recipe combines a pitch shift, an amplitude-modulation texture and an
// EQ bias, all scaled by an intensity. Intensities are nominally in [0, 2]
// but are accepted unclamped.
type EmotionModulator struct {
	sampleRate float64
	rng        *rand.Rand
}

// NewEmotionModulator creates an emotion modulator for the given sample rate.
func NewEmotionModulator(sampleRate float64, opts ...EmotionOption) (*EmotionModulator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("emotion modulator sample rate must be > 0: %f", sampleRate)
	}

	cfg := emotionConfig{seed: defaultEmotionSeed}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &EmotionModulator{
		sampleRate: sampleRate,
		rng:        rand.New(rand.NewSource(cfg.seed)),
	}, nil
}

// Happiness raises the pitch slightly, adds a 5 Hz vibrato and brightens the
// upper mids.
func (m *EmotionModulator) Happiness(in []float64, intensity float64) []float64 {
	out := PitchShift(in, 1+0.1*intensity)
	out = AmplitudeModulate(out, m.sampleRate, 5, 0.02*intensity)
	return Equalize(out, m.sampleRate,
		Band{FreqHz: 2000, GainDB: 3 * intensity},
		Band{FreqHz: 4000, GainDB: 2 * intensity},
	)
}

// Sadness lowers the pitch, adds a slow attenuating tremolo and darkens the
// spectrum.
func (m *EmotionModulator) Sadness(in []float64, intensity float64) []float64 {
	out := PitchShift(in, 1-0.15*intensity)
	out = Tremolo(out, m.sampleRate, 3, 0.1*intensity)
	return Equalize(out, m.sampleRate,
		Band{FreqHz: 1000, GainDB: -2 * intensity},
		Band{FreqHz: 3000, GainDB: -4 * intensity},
	)
}

// Anger saturates the signal, pushes the vocal formant region and adds a fast
// roughness modulation.
func (m *EmotionModulator) Anger(in []float64, intensity float64) []float64 {
	out := SoftClip(in, 1+0.1*intensity, 1)
	out = Equalize(out, m.sampleRate,
		Band{FreqHz: 800, GainDB: 4 * intensity},
		Band{FreqHz: 1500, GainDB: 3 * intensity},
	)
	return AmplitudeModulate(out, m.sampleRate, 30, 0.05*intensity)
}

// Fear raises the pitch, adds an 8 Hz trembling modulation and a layer of
// breathiness noise.
func (m *EmotionModulator) Fear(in []float64, intensity float64) []float64 {
	out := PitchShift(in, 1+0.2*intensity)
	out = AmplitudeModulate(out, m.sampleRate, 8, 0.15*intensity)

	stdDev := 0.02 * intensity
	for i := range out {
		out[i] += m.rng.NormFloat64() * stdDev
	}
	return out
}
