// Package voice ties the effect library together: voice profiles, the
// registry of built-in and custom profiles, the transformer that applies a
// profile to an audio block, and the ethics wrapper that logs and watermarks
// transformations.
package voice

import (
	"errors"
	"fmt"
	"math"
)

// Profile is an immutable voice transformation parameter set. PitchShift and
// FormantShift are ratios (1.0 = unchanged); SpecialEffects is an ordered
// list of effect kinds; EmotionModifiers maps emotion names to intensities.
//
// The JSON field names match the legacy profile file format, so profile files
// written by earlier versions load unchanged.
type Profile struct {
	Name             string             `json:"name"`
	DisplayName      string             `json:"display_name"`
	Description      string             `json:"description"`
	PitchShift       float64            `json:"pitch_shift"`
	FormantShift     float64            `json:"formant_shift"`
	SpecialEffects   []EffectKind       `json:"special_effects"`
	EmotionModifiers map[string]float64 `json:"emotion_modifiers"`
}

// ErrInvalidProfile is returned when a profile fails validation.
var ErrInvalidProfile = errors.New("voice: invalid profile")

// Validate checks the structural requirements of a profile. Parameter ranges
// are deliberately not checked: out-of-range ratios and intensities are
// accepted and produce whatever the effect chain produces.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProfile)
	}
	if math.IsNaN(p.PitchShift) || math.IsInf(p.PitchShift, 0) {
		return fmt.Errorf("%w: pitch shift is not finite", ErrInvalidProfile)
	}
	if math.IsNaN(p.FormantShift) || math.IsInf(p.FormantShift, 0) {
		return fmt.Errorf("%w: formant shift is not finite", ErrInvalidProfile)
	}
	return nil
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	out := *p
	if p.SpecialEffects != nil {
		out.SpecialEffects = append([]EffectKind(nil), p.SpecialEffects...)
	}
	if p.EmotionModifiers != nil {
		out.EmotionModifiers = make(map[string]float64, len(p.EmotionModifiers))
		for k, v := range p.EmotionModifiers {
			out.EmotionModifiers[k] = v
		}
	}
	return &out
}
