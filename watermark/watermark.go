// Package watermark embeds and detects an inaudible provenance marker in
// transformed audio.
//
// The marker is a 19 kHz tone with a slow phase modulation and a metadata
// derived frequency offset of 0 to 99 Hz. At an amplitude of 0.001 it sits
// roughly 54 dB below full scale and outside the hearing range of most
// adults. Detection measures the energy ratio of the marker band against the
// whole spectrum; the embedded metadata itself is not recoverable, only its
// frequency offset.
package watermark

import (
	"crypto/md5"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cwbudde/algo-voice/dsp/spectrum"
)

const (
	// BaseFrequency is the marker carrier frequency in Hz before the
	// metadata offset is applied.
	BaseFrequency = 19000.0

	// Amplitude is the marker level relative to full scale.
	Amplitude = 0.001

	// DetectionThreshold is the minimum band-to-total energy ratio for a
	// positive detection.
	DetectionThreshold = 1e-6

	// MinDetectSeconds is the shortest signal detection accepts.
	MinDetectSeconds = 0.1

	phaseModFreq  = 50.0
	phaseModDepth = 0.1

	bandBelow = 50.0
	bandAbove = 150.0
)

// Detection is the result of scanning audio for a marker.
type Detection struct {
	// Detected reports whether the band energy exceeded the threshold.
	Detected bool

	// FrequencyOffset is the peak frequency in the marker band minus
	// BaseFrequency, truncated to whole Hz. Only meaningful when Detected.
	FrequencyOffset int

	// EnergyRatio is the marker band energy divided by total energy.
	EnergyRatio float64

	// Confidence is EnergyRatio over the threshold, capped at 1.
	Confidence float64
}

// Codec embeds and detects markers at a fixed sample rate.
type Codec struct {
	sampleRate float64
}

// NewCodec creates a codec for the given sample rate.
func NewCodec(sampleRate float64) (*Codec, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("watermark: sample rate must be > 0: %f", sampleRate)
	}
	return &Codec{sampleRate: sampleRate}, nil
}

// FrequencyOffset reduces metadata to the 0-99 Hz carrier offset: the first
// four hex digits of the md5 of the key-sorted item list, modulo 100. An
// empty metadata map yields offset 0.
func FrequencyOffset(metadata map[string]string) int {
	if len(metadata) == 0 {
		return 0
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("[")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "('%s', '%s')", k, metadata[k])
	}
	sb.WriteString("]")

	sum := md5.Sum([]byte(sb.String()))
	// First four hex digits are the first two bytes.
	return (int(sum[0])<<8 | int(sum[1])) % 100
}

// Signal generates the raw marker signal for n samples with the given
// metadata offset applied to the carrier.
func (c *Codec) Signal(n int, metadata map[string]string) []float64 {
	freq := BaseFrequency + float64(FrequencyOffset(metadata))
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / c.sampleRate
		phase := phaseModDepth * math.Sin(2*math.Pi*phaseModFreq*t)
		out[i] = math.Sin(2*math.Pi*freq*t+phase) * Amplitude
	}
	return out
}

// Embed adds the marker to in and returns a new slice. If the sum exceeds
// full scale the result is rescaled to a 0.95 peak. Empty input is returned
// as is.
func (c *Codec) Embed(in []float64, metadata map[string]string) []float64 {
	if len(in) == 0 {
		return []float64{}
	}

	marker := c.Signal(len(in), metadata)
	out := make([]float64, len(in))
	peak := 0.0
	for i := range out {
		out[i] = in[i] + marker[i]
		if a := math.Abs(out[i]); a > peak {
			peak = a
		}
	}

	if peak > 1.0 {
		scale := 0.95 / peak
		for i := range out {
			out[i] *= scale
		}
	}
	return out
}

// Detect scans in for a marker. Signals shorter than MinDetectSeconds are
// never detected.
func (c *Codec) Detect(in []float64) (Detection, error) {
	if float64(len(in)) < c.sampleRate*MinDetectSeconds {
		return Detection{}, nil
	}

	bins, err := spectrum.Forward(in)
	if err != nil {
		return Detection{}, fmt.Errorf("watermark: %w", err)
	}
	power := spectrum.Power(bins)

	lowFreq := BaseFrequency - bandBelow
	highFreq := BaseFrequency + bandAbove

	var bandEnergy, totalEnergy float64
	peakPower := -1.0
	peakFreq := 0.0
	for i, p := range power {
		totalEnergy += p
		freq := spectrum.BinFrequency(i, len(bins), c.sampleRate)
		if freq < lowFreq || freq > highFreq {
			continue
		}
		bandEnergy += p
		if p > peakPower {
			peakPower = p
			peakFreq = freq
		}
	}
	if totalEnergy == 0 || peakPower < 0 {
		return Detection{}, nil
	}

	ratio := bandEnergy / totalEnergy
	if ratio <= DetectionThreshold {
		return Detection{EnergyRatio: ratio}, nil
	}

	return Detection{
		Detected:        true,
		FrequencyOffset: int(math.Round(peakFreq - BaseFrequency)),
		EnergyRatio:     ratio,
		Confidence:      math.Min(ratio/DetectionThreshold, 1.0),
	}, nil
}
