package voice

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/cwbudde/algo-voice/watermark"
)

// LogEntry records one transformation performed by the ethics wrapper.
// Entries are append-only and never mutated after creation.
type LogEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Profile     string    `json:"profile"`
	Duration    float64   `json:"duration"`
	Watermarked bool      `json:"watermarked"`
}

// Verification is the result of checking audio for a provenance marker.
type Verification struct {
	IsTransformed bool                `json:"is_transformed"`
	Detection     watermark.Detection `json:"detection"`
	VerifiedAt    time.Time           `json:"verified_at"`
}

// EthicalProcessor wraps a transformer with provenance safeguards: every
// transformation is logged, and the output is watermarked unless
// watermarking has been disabled.
type EthicalProcessor struct {
	transformer *Transformer
	codec       *watermark.Codec

	mu           sync.Mutex
	log          []LogEntry
	watermarking bool

	now func() time.Time
}

// NewEthicalProcessor wraps the transformer. Watermarking starts enabled.
func NewEthicalProcessor(t *Transformer) (*EthicalProcessor, error) {
	codec, err := watermark.NewCodec(t.SampleRate())
	if err != nil {
		return nil, err
	}
	return &EthicalProcessor{
		transformer:  t,
		codec:        codec,
		watermarking: true,
		now:          time.Now,
	}, nil
}

// SetWatermarking toggles marker embedding for subsequent transformations.
func (e *EthicalProcessor) SetWatermarking(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.watermarking = enabled
}

// Watermarking reports whether marker embedding is enabled.
func (e *EthicalProcessor) Watermarking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.watermarking
}

// Process transforms in with the profile, logs the transformation and embeds
// the provenance marker when watermarking is enabled.
func (e *EthicalProcessor) Process(in []float64, p *Profile) ([]float64, error) {
	now := e.now()

	e.mu.Lock()
	watermarking := e.watermarking
	profileName := ""
	if p != nil {
		profileName = p.Name
	}
	e.log = append(e.log, LogEntry{
		Timestamp:   now,
		Profile:     profileName,
		Duration:    float64(len(in)) / e.transformer.SampleRate(),
		Watermarked: watermarking,
	})
	e.mu.Unlock()

	out, err := e.transformer.Transform(in, p)
	if err != nil {
		return nil, err
	}

	if watermarking {
		metadata := map[string]string{
			"timestamp": strconv.FormatInt(now.Unix(), 10),
			"profile":   profileName,
			"type":      "voice_transformed",
			"version":   "1.0",
		}
		out = e.codec.Embed(out, metadata)
	}
	return out, nil
}

// VerifyIntegrity checks audio for the provenance marker.
func (e *EthicalProcessor) VerifyIntegrity(in []float64) (Verification, error) {
	detection, err := e.codec.Detect(in)
	if err != nil {
		return Verification{}, err
	}
	return Verification{
		IsTransformed: detection.Detected,
		Detection:     detection,
		VerifiedAt:    e.now(),
	}, nil
}

// Log returns a copy of the transformation log.
func (e *EthicalProcessor) Log() []LogEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]LogEntry(nil), e.log...)
}

// ClearLog discards all transformation log entries.
func (e *EthicalProcessor) ClearLog() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = nil
}

// DisclaimerTone renders the two-second four-tone sequence used as an audible
// stand-in for a spoken transformation disclaimer. Each tone gets a 10 ms
// fade at both ends to avoid clicks.
func DisclaimerTone(sampleRate float64) []float64 {
	const duration = 2.0
	frequencies := []float64{800, 1000, 1200, 1000}

	n := int(duration * sampleRate)
	out := make([]float64, n)
	toneDuration := duration / float64(len(frequencies))
	fade := int(0.01 * sampleRate)

	for i, freq := range frequencies {
		start := int(float64(i) * toneDuration * sampleRate)
		end := int(float64(i+1) * toneDuration * sampleRate)
		if end > n {
			end = n
		}
		for j := start; j < end; j++ {
			t := float64(j-start) / sampleRate
			v := math.Sin(2*math.Pi*freq*t) * 0.1
			if fade > 0 && end-start > 2*fade {
				if j-start < fade {
					v *= float64(j-start) / float64(fade)
				} else if end-j <= fade {
					v *= float64(end-j-1) / float64(fade)
				}
			}
			out[j] = v
		}
	}
	return out
}
