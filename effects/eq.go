package effects

import (
	"github.com/cwbudde/algo-voice/dsp/filter/biquad"
	"github.com/cwbudde/algo-voice/dsp/filter/design"
)

// Band is one parametric EQ band: a peaking filter at FreqHz with GainDB.
type Band struct {
	FreqHz float64
	GainDB float64
}

// Equalize applies a peaking filter per band with zero-phase filtering so the
// EQ introduces no phase shift. Bands whose frequency is not strictly inside
// (0, nyquist) are skipped entirely, passing the signal through for that band.
func Equalize(in []float64, sampleRate float64, bands ...Band) []float64 {
	out := make([]float64, len(in))
	copy(out, in)

	for _, band := range bands {
		c := design.Peaking(band.FreqHz, band.GainDB, sampleRate)
		if c.IsZero() {
			continue
		}
		out = biquad.FiltFilt(out, c)
	}
	return out
}
