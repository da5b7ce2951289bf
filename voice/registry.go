package voice

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// ErrProfileNotFound is returned when a profile name is not in the registry.
var ErrProfileNotFound = errors.New("voice: profile not found")

// Registry holds voice profiles by name. It starts populated with the ten
// built-in profiles and is safe for concurrent use; lookups return copies so
// callers never share mutable state with the registry.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewRegistry creates a registry preloaded with the built-in profiles.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]*Profile)}
	for _, p := range builtinProfiles() {
		r.profiles[p.Name] = p
	}
	return r
}

func builtinProfiles() []*Profile {
	return []*Profile{
		{
			Name:             "original",
			DisplayName:      "Original Voice",
			Description:      "No transformation applied",
			PitchShift:       1.0,
			FormantShift:     1.0,
			SpecialEffects:   []EffectKind{},
			EmotionModifiers: map[string]float64{},
		},
		{
			Name:             "male_deep",
			DisplayName:      "Deep Male Voice",
			Description:      "Transform to a deeper male voice",
			PitchShift:       0.7,
			FormantShift:     0.85,
			SpecialEffects:   []EffectKind{},
			EmotionModifiers: map[string]float64{"confidence": 1.2, "authority": 1.3},
		},
		{
			Name:             "female_high",
			DisplayName:      "High Female Voice",
			Description:      "Transform to a higher female voice",
			PitchShift:       1.4,
			FormantShift:     1.15,
			SpecialEffects:   []EffectKind{},
			EmotionModifiers: map[string]float64{"friendliness": 1.2, "enthusiasm": 1.1},
		},
		{
			Name:             "child",
			DisplayName:      "Child Voice",
			Description:      "Transform to sound like a child",
			PitchShift:       1.6,
			FormantShift:     1.25,
			SpecialEffects:   []EffectKind{EffectBrightness},
			EmotionModifiers: map[string]float64{"playfulness": 1.5, "innocence": 1.3},
		},
		{
			Name:             "elderly",
			DisplayName:      "Elderly Voice",
			Description:      "Transform to sound like an elderly person",
			PitchShift:       0.9,
			FormantShift:     0.95,
			SpecialEffects:   []EffectKind{EffectTremolo, EffectRoughness},
			EmotionModifiers: map[string]float64{"wisdom": 1.3, "calmness": 1.2},
		},
		{
			Name:             "robot",
			DisplayName:      "Robot Voice",
			Description:      "Robotic voice transformation",
			PitchShift:       1.0,
			FormantShift:     1.0,
			SpecialEffects:   []EffectKind{EffectVocoder, EffectMetallic},
			EmotionModifiers: map[string]float64{"monotone": 2.0},
		},
		{
			Name:             "alien",
			DisplayName:      "Alien Voice",
			Description:      "Otherworldly alien voice",
			PitchShift:       1.2,
			FormantShift:     1.3,
			SpecialEffects:   []EffectKind{EffectReverb, EffectChorus, EffectPitchModulation},
			EmotionModifiers: map[string]float64{"mystery": 1.5, "otherworldly": 2.0},
		},
		{
			Name:             "monster",
			DisplayName:      "Monster Voice",
			Description:      "Scary monster voice",
			PitchShift:       0.6,
			FormantShift:     0.8,
			SpecialEffects:   []EffectKind{EffectDistortion, EffectGrowl},
			EmotionModifiers: map[string]float64{"intimidation": 2.0, "fear": 1.8},
		},
		{
			Name:             "whisper",
			DisplayName:      "Whisper Voice",
			Description:      "Soft whisper transformation",
			PitchShift:       0.95,
			FormantShift:     1.05,
			SpecialEffects:   []EffectKind{EffectNoiseReduction, EffectSoftness},
			EmotionModifiers: map[string]float64{"intimacy": 1.5, "secrecy": 1.3},
		},
		{
			Name:             "announcer",
			DisplayName:      "Radio Announcer",
			Description:      "Professional radio announcer voice",
			PitchShift:       0.85,
			FormantShift:     0.9,
			SpecialEffects:   []EffectKind{EffectCompression, EffectEQBoost},
			EmotionModifiers: map[string]float64{"professionalism": 1.5, "clarity": 1.4},
		},
	}
}

// Get returns a copy of the named profile.
func (r *Registry) Get(name string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
	}
	return p.Clone(), nil
}

// Names returns all profile names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns copies of all profiles, sorted by name.
func (r *Registry) All() []*Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Add validates and stores a profile, replacing any existing profile with the
// same name.
func (r *Registry) Add(p *Profile) error {
	if p == nil {
		return fmt.Errorf("%w: nil profile", ErrInvalidProfile)
	}
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Name] = p.Clone()
	return nil
}

// Remove deletes the named profile. Removing an absent profile is a no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, name)
}

// Search returns profiles whose name, display name or description contains
// the query, case-insensitively, sorted by name.
func (r *Registry) Search(query string) []*Profile {
	query = strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Profile
	for _, p := range r.profiles {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.DisplayName), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var profileCategories = map[string]string{
	"original":    "Human",
	"male_deep":   "Human",
	"female_high": "Human",
	"child":       "Human",
	"elderly":     "Human",
	"robot":       "Character",
	"alien":       "Character",
	"monster":     "Character",
	"whisper":     "Professional",
	"announcer":   "Professional",
}

// Categories groups profiles into Human, Character, Professional and Effects
// buckets; profiles outside the built-in set land in Effects.
func (r *Registry) Categories() map[string][]*Profile {
	out := map[string][]*Profile{
		"Human":        {},
		"Character":    {},
		"Effects":      {},
		"Professional": {},
	}
	for _, p := range r.All() {
		category, ok := profileCategories[p.Name]
		if !ok {
			category = "Effects"
		}
		out[category] = append(out[category], p)
	}
	return out
}

// Save writes all profiles to path as a JSON object keyed by profile name.
func (r *Registry) Save(path string) error {
	profiles := make(map[string]*Profile)
	for _, p := range r.All() {
		profiles[p.Name] = p
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("voice: failed to encode profiles: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("voice: failed to write profiles: %w", err)
	}
	return nil
}

// Load reads profiles from a JSON file written by Save and merges them into
// the registry, replacing profiles with matching names.
func (r *Registry) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("voice: failed to read profiles: %w", err)
	}

	var profiles map[string]*Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return fmt.Errorf("voice: failed to decode profiles: %w", err)
	}

	for name, p := range profiles {
		if p == nil {
			continue
		}
		if p.Name == "" {
			p.Name = name
		}
		if err := r.Add(p); err != nil {
			return err
		}
	}
	return nil
}
