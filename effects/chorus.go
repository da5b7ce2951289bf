package effects

import (
	"fmt"
	"math"
)

const (
	defaultChorusDepth = 0.5
	defaultChorusRate  = 1.0
	defaultChorusWet   = 0.5

	chorusVoices = 3
)

// ChorusOption mutates chorus construction parameters.
type ChorusOption func(*chorusConfig) error

type chorusConfig struct {
	depth float64
	rate  float64
	wet   float64
}

func defaultChorusConfig() chorusConfig {
	return chorusConfig{
		depth: defaultChorusDepth,
		rate:  defaultChorusRate,
		wet:   defaultChorusWet,
	}
}

// WithChorusDepth sets the modulation depth in [0, 1].
func WithChorusDepth(depth float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if depth < 0 || depth > 1 || math.IsNaN(depth) {
			return fmt.Errorf("chorus depth must be in [0, 1]: %f", depth)
		}
		cfg.depth = depth
		return nil
	}
}

// WithChorusRate sets the modulation rate in Hz.
func WithChorusRate(rate float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return fmt.Errorf("chorus rate must be > 0 Hz: %f", rate)
		}
		cfg.rate = rate
		return nil
	}
}

// WithChorusWet sets the wet mix level in [0, 1].
func WithChorusWet(wet float64) ChorusOption {
	return func(cfg *chorusConfig) error {
		if wet < 0 || wet > 1 || math.IsNaN(wet) {
			return fmt.Errorf("chorus wet level must be in [0, 1]: %f", wet)
		}
		cfg.wet = wet
		return nil
	}
}

// Chorus thickens the input with three delayed copies at base delays of 10,
// 15 and 20 ms. Each voice's delay is notionally modulated by an LFO at
// rate*(0.8 + 0.1*voice) with up to depth*5 ms of swing, but the applied
// delay is the mean over the block, so every copy lands at a fixed offset,
// matching the output of earlier renderers.
type Chorus struct {
	sampleRate float64
	depth      float64
	rate       float64
	wet        float64
}

// NewChorus creates a chorus for the given sample rate.
func NewChorus(sampleRate float64, opts ...ChorusOption) (*Chorus, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("chorus sample rate must be > 0: %f", sampleRate)
	}

	cfg := defaultChorusConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Chorus{
		sampleRate: sampleRate,
		depth:      cfg.depth,
		rate:       cfg.rate,
		wet:        cfg.wet,
	}, nil
}

// Process applies the chorus and returns a new slice of the input length.
func (c *Chorus) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	if len(in) == 0 {
		return out
	}

	wetSignal := make([]float64, len(in))
	modDepthMs := c.depth * 5

	for voice := 0; voice < chorusVoices; voice++ {
		baseDelayMs := 10 + float64(voice)*5
		lfoFreq := c.rate * (0.8 + float64(voice)*0.1)

		sum := 0.0
		for i := range in {
			t := float64(i) / c.sampleRate
			sum += baseDelayMs + modDepthMs*math.Sin(2*math.Pi*lfoFreq*t)
		}
		avgDelayMs := sum / float64(len(in))

		delay := int(avgDelayMs * c.sampleRate / 1000)
		if delay >= len(in) {
			continue
		}
		if delay < 0 {
			delay = 0
		}
		for i := delay; i < len(in); i++ {
			wetSignal[i] += in[i-delay] / chorusVoices
		}
	}

	dry := 1 - c.wet
	for i := range out {
		out[i] = dry*in[i] + c.wet*wetSignal[i]
	}
	return out
}
