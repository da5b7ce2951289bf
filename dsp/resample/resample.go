// Package resample implements linear-interpolation resampling.
package resample

// Linear resamples in to newLength samples by linear interpolation over
// evenly spaced positions covering the full input index range [0, len(in)-1].
//
// The first output sample always equals in[0] and the last equals
// in[len(in)-1]; interior samples interpolate between neighbors. A
// non-positive newLength returns nil.
func Linear(in []float64, newLength int) []float64 {
	if newLength <= 0 || len(in) == 0 {
		return nil
	}

	out := make([]float64, newLength)
	if len(in) == 1 {
		for i := range out {
			out[i] = in[0]
		}
		return out
	}
	if newLength == 1 {
		out[0] = in[0]
		return out
	}

	step := float64(len(in)-1) / float64(newLength-1)
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = in[j] + frac*(in[j+1]-in[j])
	}
	return out
}

// LinearToLength resamples in to newLength and then pads with zeros or
// truncates so the result has exactly targetLength samples.
func LinearToLength(in []float64, newLength, targetLength int) []float64 {
	resampled := Linear(in, newLength)

	if len(resampled) >= targetLength {
		return resampled[:targetLength]
	}

	out := make([]float64, targetLength)
	copy(out, resampled)
	return out
}
