package voice

// EffectKind identifies one special effect a profile can request. The set is
// closed: profile files may carry identifiers this version does not know, and
// those decode to EffectUnknown and are skipped at transform time instead of
// failing the profile.
type EffectKind int

const (
	EffectUnknown EffectKind = iota
	EffectVocoder
	EffectMetallic
	EffectReverb
	EffectChorus
	EffectPitchModulation
	EffectDistortion
	EffectGrowl
	EffectTremolo
	EffectRoughness
	EffectBrightness
	EffectSoftness
	EffectNoiseReduction
	EffectCompression
	EffectEQBoost
)

var effectNames = map[EffectKind]string{
	EffectVocoder:         "vocoder",
	EffectMetallic:        "metallic",
	EffectReverb:          "reverb",
	EffectChorus:          "chorus",
	EffectPitchModulation: "pitch_modulation",
	EffectDistortion:      "distortion",
	EffectGrowl:           "growl",
	EffectTremolo:         "tremolo",
	EffectRoughness:       "roughness",
	EffectBrightness:      "brightness",
	EffectSoftness:        "softness",
	EffectNoiseReduction:  "noise_reduction",
	EffectCompression:     "compression",
	EffectEQBoost:         "eq_boost",
}

var effectKinds = func() map[string]EffectKind {
	m := make(map[string]EffectKind, len(effectNames))
	for kind, name := range effectNames {
		m[name] = kind
	}
	return m
}()

// ParseEffectKind maps an effect identifier to its kind. Unrecognized
// identifiers yield EffectUnknown.
func ParseEffectKind(name string) EffectKind {
	return effectKinds[name]
}

// String returns the profile-file identifier of the kind, or "unknown".
func (k EffectKind) String() string {
	if name, ok := effectNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind as its identifier.
func (k EffectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes an identifier, mapping unrecognized ones to
// EffectUnknown without error.
func (k *EffectKind) UnmarshalText(text []byte) error {
	*k = ParseEffectKind(string(text))
	return nil
}
