package spectrum

// RemapPositive moves each positive-frequency bin i to bin floor(i*factor),
// returning a new spectrum of the same length. Contributions landing past the
// end of the spectrum are discarded; collisions overwrite (last writer wins).
//
// Only bins 1..n/2-1 are remapped and the conjugate half is left empty, so
// the result is generally not conjugate-symmetric and its inverse transform
// is complex; callers take the real part. This is the legacy formant-shift
// kernel: a raw bin remap, known to alias and smear harmonics. The behavior
// is intentional and must not be "fixed".
func RemapPositive(bins []complex128, factor float64) []complex128 {
	out := make([]complex128, len(bins))
	if len(bins) == 0 {
		return out
	}

	half := len(bins) / 2
	for i := 1; i < half; i++ {
		target := int(float64(i) * factor)
		if target >= 0 && target < len(out) {
			out[target] = bins[i]
		}
	}
	return out
}
