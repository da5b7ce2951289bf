package voice

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
	"github.com/cwbudde/algo-voice/dsp/filter/design"
	"github.com/cwbudde/algo-voice/effects"
)

const (
	transformPeak   = 0.8
	robotCarrierHz  = 200.0
	noiseReductionC = 8000.0
)

// TransformerOption mutates transformer construction parameters.
type TransformerOption func(*transformerConfig) error

type transformerConfig struct {
	seed int64
}

// WithTransformerSeed sets the random seed shared by noise-based effect
// stages.
func WithTransformerSeed(seed int64) TransformerOption {
	return func(cfg *transformerConfig) error {
		cfg.seed = seed
		return nil
	}
}

// Transformer applies a voice profile to an audio block: pitch shift, formant
// shift, the profile's special effects in order, its emotion modifiers, and a
// final normalization to a 0.8 peak.
//
// A transformer is not safe for concurrent use; the pipeline owns one per
// worker.
type Transformer struct {
	sampleRate float64

	emotion *effects.EmotionModulator
	reverb  *effects.Reverb
	chorus  *effects.Chorus

	noiseReduction []biquad.Coefficients
}

// NewTransformer creates a transformer for the given sample rate.
func NewTransformer(sampleRate float64, opts ...TransformerOption) (*Transformer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("voice: transformer sample rate must be > 0: %f", sampleRate)
	}

	cfg := transformerConfig{seed: 1}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	emotion, err := effects.NewEmotionModulator(sampleRate, effects.WithEmotionSeed(cfg.seed))
	if err != nil {
		return nil, err
	}
	reverb, err := effects.NewReverb(sampleRate, effects.WithReverbSeed(cfg.seed))
	if err != nil {
		return nil, err
	}
	chorus, err := effects.NewChorus(sampleRate)
	if err != nil {
		return nil, err
	}

	return &Transformer{
		sampleRate:     sampleRate,
		emotion:        emotion,
		reverb:         reverb,
		chorus:         chorus,
		noiseReduction: design.ButterworthLP(noiseReductionC, 2, sampleRate),
	}, nil
}

// SampleRate returns the transformer's sample rate.
func (t *Transformer) SampleRate() float64 { return t.sampleRate }

// Transform applies the profile and returns a new slice of the input length.
func (t *Transformer) Transform(in []float64, p *Profile) ([]float64, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil profile", ErrInvalidProfile)
	}
	if len(in) == 0 {
		return []float64{}, nil
	}

	out := make([]float64, len(in))
	copy(out, in)

	if p.PitchShift != 1.0 {
		out = effects.PitchShift(out, p.PitchShift)
	}
	if p.FormantShift != 1.0 {
		shifted, err := effects.FormantShift(out, p.FormantShift)
		if err != nil {
			return nil, err
		}
		out = shifted
	}

	for _, kind := range p.SpecialEffects {
		applied, err := t.applyEffect(out, kind)
		if err != nil {
			return nil, err
		}
		out = applied
	}

	out = t.applyEmotions(out, p.EmotionModifiers)

	peak := core.MaxAbs(out)
	if peak > 0 {
		scale := transformPeak / peak
		for i := range out {
			out[i] *= scale
		}
	}
	return out, nil
}

func (t *Transformer) applyEffect(in []float64, kind EffectKind) ([]float64, error) {
	switch kind {
	case EffectVocoder:
		return effects.Vocoder(in, t.sampleRate, robotCarrierHz)
	case EffectMetallic:
		return effects.Metallic(in, t.sampleRate, robotCarrierHz), nil
	case EffectReverb:
		return t.reverb.Process(in)
	case EffectChorus:
		return t.chorus.Process(in), nil
	case EffectPitchModulation:
		return effects.AmplitudeModulate(in, t.sampleRate, 3, 0.3), nil
	case EffectDistortion:
		return effects.SoftClip(in, 2, 0.7), nil
	case EffectGrowl:
		out := effects.SoftClip(in, 4, 0.8)
		return effects.AmplitudeModulate(out, t.sampleRate, 30, 0.2), nil
	case EffectTremolo:
		return effects.Tremolo(in, t.sampleRate, 5, 0.2), nil
	case EffectRoughness:
		return effects.AmplitudeModulate(in, t.sampleRate, 30, 0.05), nil
	case EffectBrightness:
		return effects.Equalize(in, t.sampleRate,
			effects.Band{FreqHz: 2000, GainDB: 3},
			effects.Band{FreqHz: 4000, GainDB: 2},
		), nil
	case EffectSoftness:
		return effects.Equalize(in, t.sampleRate,
			effects.Band{FreqHz: 1000, GainDB: -2},
			effects.Band{FreqHz: 3000, GainDB: -4},
		), nil
	case EffectNoiseReduction:
		if len(t.noiseReduction) == 0 {
			return in, nil
		}
		return biquad.FiltFilt(in, t.noiseReduction...), nil
	case EffectCompression:
		return effects.SoftClip(in, 1.5, 0.9), nil
	case EffectEQBoost:
		return effects.Equalize(in, t.sampleRate,
			effects.Band{FreqHz: 200, GainDB: 2},
			effects.Band{FreqHz: 3000, GainDB: 3},
		), nil
	default:
		return in, nil
	}
}

// applyEmotions runs the recognized emotion modifiers in sorted name order so
// the result is deterministic regardless of map iteration. Unrecognized
// emotion names are ignored.
func (t *Transformer) applyEmotions(in []float64, modifiers map[string]float64) []float64 {
	if len(modifiers) == 0 {
		return in
	}

	names := make([]string, 0, len(modifiers))
	for name := range modifiers {
		names = append(names, name)
	}
	sort.Strings(names)

	out := in
	for _, name := range names {
		intensity := modifiers[name]
		switch name {
		case "happiness":
			out = t.emotion.Happiness(out, intensity)
		case "sadness":
			out = t.emotion.Sadness(out, intensity)
		case "anger":
			out = t.emotion.Anger(out, intensity)
		case "fear":
			out = t.emotion.Fear(out, intensity)
		case "confidence":
			scaled := make([]float64, len(out))
			for i, v := range out {
				scaled[i] = v * intensity
			}
			out = scaled
		}
	}
	return out
}
