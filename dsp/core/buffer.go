package core

// EnsureLen returns a block of length n, reusing buf's storage when its
// capacity allows. The returned contents are unspecified.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero silences buf in place.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies as many samples of src into dst as fit and returns the
// count.
func CopyInto(dst, src []float64) int {
	return copy(dst, src)
}
