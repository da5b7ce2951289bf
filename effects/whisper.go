package effects

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
	"github.com/cwbudde/algo-voice/dsp/filter/design"
)

const (
	defaultWhisperIntensity = 0.5
	defaultWhisperSeed      = 1
)

// WhisperOption mutates whisper construction parameters.
type WhisperOption func(*whisperConfig) error

type whisperConfig struct {
	intensity float64
	seed      int64
}

// WithWhisperIntensity sets the whisper intensity in [0, 1].
func WithWhisperIntensity(intensity float64) WhisperOption {
	return func(cfg *whisperConfig) error {
		if intensity < 0 || intensity > 1 || math.IsNaN(intensity) {
			return fmt.Errorf("whisper intensity must be in [0, 1]: %f", intensity)
		}
		cfg.intensity = intensity
		return nil
	}
}

// WithWhisperSeed sets the random seed for breath noise.
func WithWhisperSeed(seed int64) WhisperOption {
	return func(cfg *whisperConfig) error {
		cfg.seed = seed
		return nil
	}
}

// Whisper turns voiced speech breathy: the input is attenuated by
// 1 - 0.7*intensity, mixed with band-limited noise (500-4000 Hz) and
// high-passed at 200 Hz to strip the chest resonance.
type Whisper struct {
	sampleRate float64
	intensity  float64
	rng        *rand.Rand

	noiseBand []biquad.Coefficients
	highPass  []biquad.Coefficients
}

// NewWhisper creates a whisper effect for the given sample rate.
func NewWhisper(sampleRate float64, opts ...WhisperOption) (*Whisper, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("whisper sample rate must be > 0: %f", sampleRate)
	}

	cfg := whisperConfig{intensity: defaultWhisperIntensity, seed: defaultWhisperSeed}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Whisper{
		sampleRate: sampleRate,
		intensity:  cfg.intensity,
		rng:        rand.New(rand.NewSource(cfg.seed)),
		noiseBand:  design.ButterworthBP(500, 4000, 2, sampleRate),
		highPass:   design.ButterworthHP(200, 2, sampleRate),
	}, nil
}

// Process applies the whisper effect and returns a new slice of the input
// length.
func (w *Whisper) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	if len(in) == 0 {
		return out
	}

	gain := 1 - w.intensity*0.7
	for i, v := range in {
		out[i] = v * gain
	}

	noise := make([]float64, len(in))
	stdDev := 0.1 * w.intensity
	for i := range noise {
		noise[i] = w.rng.NormFloat64() * stdDev
	}
	if len(w.noiseBand) > 0 {
		noise = biquad.FiltFilt(noise, w.noiseBand...)
	}
	for i := range out {
		out[i] += noise[i]
	}

	if len(w.highPass) > 0 {
		out = biquad.FiltFilt(out, w.highPass...)
	}
	return out
}
