package effects

import (
	"fmt"
	"math"
)

const (
	defaultEchoDelayMs  = 300.0
	defaultEchoFeedback = 0.3
	defaultEchoWet      = 0.3
)

// EchoOption mutates echo construction parameters.
type EchoOption func(*echoConfig) error

type echoConfig struct {
	delayMs  float64
	feedback float64
	wet      float64
}

func defaultEchoConfig() echoConfig {
	return echoConfig{
		delayMs:  defaultEchoDelayMs,
		feedback: defaultEchoFeedback,
		wet:      defaultEchoWet,
	}
}

// WithEchoDelayMs sets the echo delay in milliseconds.
func WithEchoDelayMs(delayMs float64) EchoOption {
	return func(cfg *echoConfig) error {
		if delayMs <= 0 || math.IsNaN(delayMs) || math.IsInf(delayMs, 0) {
			return fmt.Errorf("echo delay must be > 0 ms: %f", delayMs)
		}
		cfg.delayMs = delayMs
		return nil
	}
}

// WithEchoFeedback sets the feedback amount in [0, 0.9].
func WithEchoFeedback(feedback float64) EchoOption {
	return func(cfg *echoConfig) error {
		if feedback < 0 || feedback > 0.9 || math.IsNaN(feedback) {
			return fmt.Errorf("echo feedback must be in [0, 0.9]: %f", feedback)
		}
		cfg.feedback = feedback
		return nil
	}
}

// WithEchoWet sets the wet mix level in [0, 1].
func WithEchoWet(wet float64) EchoOption {
	return func(cfg *echoConfig) error {
		if wet < 0 || wet > 1 || math.IsNaN(wet) {
			return fmt.Errorf("echo wet level must be in [0, 1]: %f", wet)
		}
		cfg.wet = wet
		return nil
	}
}

// Echo is a feedback comb delay: each sample from the delay point onward
// accumulates feedback times the already-written sample one delay earlier.
type Echo struct {
	sampleRate float64
	delayMs    float64
	feedback   float64
	wet        float64
}

// NewEcho creates an echo for the given sample rate.
func NewEcho(sampleRate float64, opts ...EchoOption) (*Echo, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("echo sample rate must be > 0: %f", sampleRate)
	}

	cfg := defaultEchoConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Echo{
		sampleRate: sampleRate,
		delayMs:    cfg.delayMs,
		feedback:   cfg.feedback,
		wet:        cfg.wet,
	}, nil
}

// DelaySamples returns the configured delay in whole samples.
func (e *Echo) DelaySamples() int {
	return int(e.delayMs * e.sampleRate / 1000)
}

// Process applies the echo and returns a new slice of the input length.
// If the delay is at least the block length the input is returned unchanged.
func (e *Echo) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)

	delay := e.DelaySamples()
	if delay <= 0 || delay >= len(in) {
		return out
	}

	buf := make([]float64, len(in)+delay)
	copy(buf, in)
	for i := delay; i < len(buf); i++ {
		buf[i] += e.feedback * buf[i-delay]
	}

	dry := 1 - e.wet
	for i := range out {
		out[i] = dry*in[i] + e.wet*buf[i]
	}
	return out
}
