package demo

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/effects"
	"github.com/cwbudde/algo-voice/voice"
	"github.com/cwbudde/algo-voice/watermark"
	"github.com/cwbudde/algo-voice/wavio"
)

// Renderer writes demonstration WAV sets: one file per voice profile, per
// emotion intensity and per special effect, plus a watermark comparison pair.
// Rendering fans out across profiles with one transformer per task, since
// transformers are single-threaded.
type Renderer struct {
	cfg      core.ProcessorConfig
	registry *voice.Registry
	gen      *SpeechGenerator
	codec    *watermark.Codec
	seed     int64
}

// NewRenderer creates a renderer over the given registry.
func NewRenderer(registry *voice.Registry, coreOpts []core.ProcessorOption, opts ...SpeechOption) (*Renderer, error) {
	cfg := core.ApplyProcessorOptions(coreOpts...)
	codec, err := watermark.NewCodec(cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		cfg:      cfg,
		registry: registry,
		gen:      NewSpeechGenerator(coreOpts, opts...),
		codec:    codec,
		seed:     1,
	}, nil
}

func (r *Renderer) save(path string, samples []float64) error {
	if err := wavio.Write(path, samples, int(r.cfg.SampleRate)); err != nil {
		return fmt.Errorf("demo: render %s: %w", filepath.Base(path), err)
	}
	return nil
}

// RenderProfileDemos writes the base speech plus one transformed, watermarked
// file per registry profile into dir.
func (r *Renderer) RenderProfileDemos(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	base := r.gen.Speech(4.0, 150)
	if err := r.save(filepath.Join(dir, "00_original.wav"), base); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, profile := range r.registry.All() {
		i, profile := i, profile
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			transformer, err := voice.NewTransformer(r.cfg.SampleRate, voice.WithTransformerSeed(r.seed))
			if err != nil {
				return err
			}
			out, err := transformer.Transform(base, profile)
			if err != nil {
				return fmt.Errorf("demo: profile %s: %w", profile.Name, err)
			}
			out = r.codec.Embed(out, map[string]string{
				"profile": profile.Name,
				"demo":    "true",
			})
			name := fmt.Sprintf("%02d_%s.wav", i+1, profile.Name)
			return r.save(filepath.Join(dir, name), out)
		})
	}
	return g.Wait()
}

// RenderEmotionDemos writes each emotion at intensities 0.5, 1.0 and 1.5 into
// dir/emotions.
func (r *Renderer) RenderEmotionDemos(ctx context.Context, dir string) error {
	emotionsDir := filepath.Join(dir, "emotions")
	if err := os.MkdirAll(emotionsDir, 0o755); err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	base := r.gen.Speech(3.0, 180)
	emotions := []string{"happy", "sad", "angry", "fearful"}
	intensities := []float64{0.5, 1.0, 1.5}

	g, ctx := errgroup.WithContext(ctx)
	for _, emotion := range emotions {
		emotion := emotion
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			modulator, err := effects.NewEmotionModulator(r.cfg.SampleRate, effects.WithEmotionSeed(r.seed))
			if err != nil {
				return err
			}
			for _, intensity := range intensities {
				var out []float64
				switch emotion {
				case "happy":
					out = modulator.Happiness(base, intensity)
				case "sad":
					out = modulator.Sadness(base, intensity)
				case "angry":
					out = modulator.Anger(base, intensity)
				case "fearful":
					out = modulator.Fear(base, intensity)
				}
				out = r.codec.Embed(out, map[string]string{
					"emotion":   emotion,
					"intensity": fmt.Sprintf("%.1f", intensity),
					"demo":      "true",
				})
				name := fmt.Sprintf("%s_intensity_%.1f.wav", emotion, intensity)
				if err := r.save(filepath.Join(emotionsDir, name), out); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// RenderEffectDemos writes one file per specialty effect into dir/effects.
func (r *Renderer) RenderEffectDemos(ctx context.Context, dir string) error {
	effectsDir := filepath.Join(dir, "effects")
	if err := os.MkdirAll(effectsDir, 0o755); err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	base := r.gen.Speech(3.0, 160)
	sr := r.cfg.SampleRate

	renderers := map[string]func() ([]float64, error){
		"vocoder": func() ([]float64, error) {
			return effects.Vocoder(base, sr, 200)
		},
		"whisper": func() ([]float64, error) {
			w, err := effects.NewWhisper(sr,
				effects.WithWhisperIntensity(0.7),
				effects.WithWhisperSeed(r.seed))
			if err != nil {
				return nil, err
			}
			return w.Process(base), nil
		},
		"telephone": func() ([]float64, error) {
			t, err := effects.NewTelephone(sr, effects.WithTelephoneSeed(r.seed))
			if err != nil {
				return nil, err
			}
			return t.Process(base), nil
		},
		"alien": func() ([]float64, error) {
			a, err := effects.NewAlien(sr, effects.WithAlienSeed(r.seed))
			if err != nil {
				return nil, err
			}
			return a.Process(base)
		},
		"reverb": func() ([]float64, error) {
			rv, err := effects.NewReverb(sr,
				effects.WithReverbRoomSize(0.8),
				effects.WithReverbWet(0.6),
				effects.WithReverbSeed(r.seed))
			if err != nil {
				return nil, err
			}
			return rv.Process(base)
		},
		"echo": func() ([]float64, error) {
			e, err := effects.NewEcho(sr,
				effects.WithEchoDelayMs(250),
				effects.WithEchoFeedback(0.4),
				effects.WithEchoWet(0.5))
			if err != nil {
				return nil, err
			}
			return e.Process(base), nil
		},
	}

	g, ctx := errgroup.WithContext(ctx)
	for name, render := range renderers {
		name, render := name, render
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := render()
			if err != nil {
				return fmt.Errorf("demo: effect %s: %w", name, err)
			}
			out = r.codec.Embed(out, map[string]string{
				"effect": name,
				"demo":   "true",
			})
			return r.save(filepath.Join(effectsDir, name+"_effect.wav"), out)
		})
	}
	return g.Wait()
}

// RenderWatermarkPair writes a clean 440 Hz sine and its watermarked twin
// into dir so the two can be compared by ear and by the detector.
func (r *Renderer) RenderWatermarkPair(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	n := int(r.cfg.SampleRate)
	clean := make([]float64, n)
	for i := range clean {
		clean[i] = 0.5 * sine440(i, r.cfg.SampleRate)
	}

	marked := r.codec.Embed(clean, map[string]string{
		"type": "watermark_demo",
	})

	if err := r.save(filepath.Join(dir, "watermark_clean.wav"), clean); err != nil {
		return err
	}
	return r.save(filepath.Join(dir, "watermark_embedded.wav"), marked)
}

// RenderAll writes every demo set under dir.
func (r *Renderer) RenderAll(ctx context.Context, dir string) error {
	if err := r.RenderProfileDemos(ctx, dir); err != nil {
		return err
	}
	if err := r.RenderEmotionDemos(ctx, dir); err != nil {
		return err
	}
	if err := r.RenderEffectDemos(ctx, dir); err != nil {
		return err
	}
	return r.RenderWatermarkPair(filepath.Join(dir, "watermark"))
}

func sine440(i int, sampleRate float64) float64 {
	return math.Sin(2 * math.Pi * 440 * float64(i) / sampleRate)
}
