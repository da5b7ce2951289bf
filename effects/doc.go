// Package effects implements the voice transformation effect library.
//
// Every effect produces output of exactly the input length, and every effect
// degrades instead of failing on out-of-range filter frequencies: a stage
// whose cutoff does not map inside (0, nyquist) passes the signal through
// unmodified. Effects that synthesize noise own a deterministic random source
// seeded at construction so repeated runs are reproducible.
//
// The pitch and formant shifters deliberately preserve the legacy algorithms:
// resampling-based pitch shifting with its known artifacts, and the raw FFT
// bin-remap formant shift that aliases harmonics. Higher-quality algorithms
// (phase vocoder, PSOLA) are explicitly out of scope.
package effects
