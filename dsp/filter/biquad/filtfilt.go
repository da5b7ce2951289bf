package biquad

// FiltFilt applies the cascade to in with zero-phase (forward-backward)
// filtering: the signal is filtered once, time-reversed, filtered again with
// fresh state, and reversed back. The magnitude response is applied twice and
// phase distortion cancels.
//
// The input is never modified; the result has the same length. Zero-valued
// coefficient sets are skipped, so a fully out-of-range design returns a
// plain copy of the input.
func FiltFilt(in []float64, coeffs ...Coefficients) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	if len(in) == 0 {
		return out
	}

	for _, c := range coeffs {
		if c.IsZero() {
			continue
		}

		s := NewSection(c)
		s.ProcessBlock(out)

		reverse(out)
		s.Reset()
		s.ProcessBlock(out)
		reverse(out)
	}

	return out
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
