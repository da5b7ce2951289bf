// Package demo generates synthetic speech and renders demonstration WAV sets
// for every voice profile, emotion and effect, plus a synthetic audio driver
// so the pipeline can run without hardware.
package demo

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/dsp/signal"
)

var (
	speechHarmonics  = []float64{1, 2, 3, 4, 5, 6, 7, 8}
	speechAmplitudes = []float64{0.5, 0.3, 0.2, 0.15, 0.1, 0.08, 0.06, 0.04}
	speechFormants   = []float64{800, 1200, 2400}
)

const (
	speechFormantAmp     = 0.1
	speechVibratoFreq    = 5.0
	speechVibratoDepth   = 0.02
	speechSegmentSeconds = 0.5
	speechPauseSeconds   = 0.1
	speechFadeSeconds    = 0.05
	speechNoiseStdDev    = 0.01
	speechPeak           = 0.8
)

// SpeechGenerator synthesizes speech-like test audio: a vibrato-modulated
// harmonic stack with vowel-formant partials, shaped into word-length
// segments separated by pauses, with a low noise floor.
type SpeechGenerator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// SpeechOption configures a SpeechGenerator.
type SpeechOption func(*SpeechGenerator)

// WithSpeechSeed sets the deterministic seed for the noise floor.
func WithSpeechSeed(seed int64) SpeechOption {
	return func(g *SpeechGenerator) {
		g.seed = seed
	}
}

// NewSpeechGenerator creates a speech generator.
func NewSpeechGenerator(coreOpts []core.ProcessorOption, opts ...SpeechOption) *SpeechGenerator {
	g := &SpeechGenerator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator's processor configuration.
func (g *SpeechGenerator) Config() core.ProcessorConfig { return g.cfg }

// Speech synthesizes duration seconds of speech-like audio at the given
// fundamental frequency, normalized to a 0.8 peak.
func (g *SpeechGenerator) Speech(duration, fundamental float64) []float64 {
	sr := g.cfg.SampleRate
	n := int(duration * sr)
	if n <= 0 {
		return []float64{}
	}

	speech := make([]float64, n)
	for i := range speech {
		t := float64(i) / sr
		freqMod := 1 + speechVibratoDepth*math.Sin(2*math.Pi*speechVibratoFreq*t)
		for h, harmonic := range speechHarmonics {
			freq := fundamental * harmonic
			speech[i] += speechAmplitudes[h] * math.Sin(2*math.Pi*freq*freqMod*t)
		}
		for _, formant := range speechFormants {
			speech[i] += speechFormantAmp * math.Sin(2*math.Pi*formant*t)
		}
	}

	applySegmentEnvelope(speech, sr, duration)

	rng := rand.New(rand.NewSource(g.seed))
	for i := range speech {
		speech[i] += rng.NormFloat64() * speechNoiseStdDev
	}

	out, err := signal.Normalize(speech, speechPeak)
	if err != nil {
		return speech
	}
	return out
}

// applySegmentEnvelope shapes the signal into 0.5 s segments with 50 ms fades
// separated by 0.1 s of silence.
func applySegmentEnvelope(speech []float64, sr, duration float64) {
	n := len(speech)
	envelope := make([]float64, n)
	for i := range envelope {
		envelope[i] = 1
	}

	fade := int(speechFadeSeconds * sr)
	current := 0.0
	for current < duration {
		start := int(current * sr)
		end := int(math.Min((current+speechSegmentSeconds)*sr, float64(n)))
		if length := end - start; length > 2*fade && fade > 0 {
			for i := 0; i < fade; i++ {
				envelope[start+i] *= float64(i) / float64(fade-1)
				envelope[end-fade+i] *= float64(fade-1-i) / float64(fade-1)
			}
		}
		current += speechSegmentSeconds

		pauseStart := int(current * sr)
		pauseEnd := int(math.Min((current+speechPauseSeconds)*sr, float64(n)))
		for i := pauseStart; i < pauseEnd && i < n; i++ {
			envelope[i] = 0
		}
		current += speechPauseSeconds
	}

	for i := range speech {
		speech[i] *= envelope[i]
	}
}
