package effects

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-voice/dsp/conv"
	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
	"github.com/cwbudde/algo-voice/dsp/filter/design"
)

const (
	defaultReverbRoomSize = 0.5
	defaultReverbDamping  = 0.5
	defaultReverbWet      = 0.3
	defaultReverbSeed     = 1
)

// ReverbOption mutates reverb construction parameters.
type ReverbOption func(*reverbConfig) error

type reverbConfig struct {
	roomSize float64
	damping  float64
	wet      float64
	seed     int64
}

func defaultReverbConfig() reverbConfig {
	return reverbConfig{
		roomSize: defaultReverbRoomSize,
		damping:  defaultReverbDamping,
		wet:      defaultReverbWet,
		seed:     defaultReverbSeed,
	}
}

// WithReverbRoomSize sets the simulated room size in [0, 1].
func WithReverbRoomSize(roomSize float64) ReverbOption {
	return func(cfg *reverbConfig) error {
		if roomSize < 0 || roomSize > 1 || math.IsNaN(roomSize) {
			return fmt.Errorf("reverb room size must be in [0, 1]: %f", roomSize)
		}
		cfg.roomSize = roomSize
		return nil
	}
}

// WithReverbDamping sets high-frequency damping in [0, 1].
func WithReverbDamping(damping float64) ReverbOption {
	return func(cfg *reverbConfig) error {
		if damping < 0 || damping > 1 || math.IsNaN(damping) {
			return fmt.Errorf("reverb damping must be in [0, 1]: %f", damping)
		}
		cfg.damping = damping
		return nil
	}
}

// WithReverbWet sets the wet mix level in [0, 1].
func WithReverbWet(wet float64) ReverbOption {
	return func(cfg *reverbConfig) error {
		if wet < 0 || wet > 1 || math.IsNaN(wet) {
			return fmt.Errorf("reverb wet level must be in [0, 1]: %f", wet)
		}
		cfg.wet = wet
		return nil
	}
}

// WithReverbSeed sets the random seed for impulse-response noise.
func WithReverbSeed(seed int64) ReverbOption {
	return func(cfg *reverbConfig) error {
		cfg.seed = seed
		return nil
	}
}

// Reverb simulates an acoustic space by convolving the input with a
// noise-excited exponentially decaying impulse response.
//
// The impulse response is 0.1 + 2*roomSize seconds of Gaussian noise shaped
// by an exponential envelope with time constant 0.5 + 2*roomSize seconds,
// optionally low-passed at 8000*(1-damping) Hz when damping > 0. It is built
// once at construction from a deterministic seed.
type Reverb struct {
	sampleRate float64
	roomSize   float64
	damping    float64
	wet        float64

	impulse []float64
}

// NewReverb creates a reverb for the given sample rate.
func NewReverb(sampleRate float64, opts ...ReverbOption) (*Reverb, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("reverb sample rate must be > 0: %f", sampleRate)
	}

	cfg := defaultReverbConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	r := &Reverb{
		sampleRate: sampleRate,
		roomSize:   cfg.roomSize,
		damping:    cfg.damping,
		wet:        cfg.wet,
	}
	r.impulse = r.buildImpulse(cfg.seed)
	return r, nil
}

// RoomSize returns the simulated room size.
func (r *Reverb) RoomSize() float64 { return r.roomSize }

// Damping returns the high-frequency damping amount.
func (r *Reverb) Damping() float64 { return r.damping }

// Wet returns the wet mix level.
func (r *Reverb) Wet() float64 { return r.wet }

// ImpulseLength returns the impulse response length in samples.
func (r *Reverb) ImpulseLength() int { return len(r.impulse) }

// Process applies the reverb and returns a new slice of the input length.
func (r *Reverb) Process(in []float64) ([]float64, error) {
	if len(in) == 0 {
		return []float64{}, nil
	}

	wetSignal, err := conv.Same(in, r.impulse)
	if err != nil {
		return nil, fmt.Errorf("reverb: %w", err)
	}

	dry := 1 - r.wet
	out := make([]float64, len(in))
	for i := range out {
		out[i] = dry*in[i] + r.wet*wetSignal[i]
	}
	return out, nil
}

func (r *Reverb) buildImpulse(seed int64) []float64 {
	length := int(r.sampleRate * (0.1 + r.roomSize*2.0))
	if length < 1 {
		length = 1
	}

	decayTime := 0.5 + r.roomSize*2.0
	rng := rand.New(rand.NewSource(seed))

	impulse := make([]float64, length)
	for i := range impulse {
		t := float64(i) / r.sampleRate
		impulse[i] = rng.NormFloat64() * math.Exp(-t/decayTime)
	}

	if r.damping > 0 {
		cutoff := 8000 * (1 - r.damping)
		sections := design.ButterworthLP(cutoff, 2, r.sampleRate)
		if len(sections) > 0 {
			impulse = biquad.FiltFilt(impulse, sections...)
		}
	}
	return impulse
}
