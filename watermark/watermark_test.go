package watermark

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-voice/internal/testutil"
)

const sampleRate = 44100.0

func TestNewCodecInvalidSampleRate(t *testing.T) {
	if _, err := NewCodec(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewCodec(math.NaN()); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}
}

func TestFrequencyOffsetRange(t *testing.T) {
	metas := []map[string]string{
		nil,
		{},
		{"profile": "robot"},
		{"profile": "alien", "type": "voice_transformed"},
		{"timestamp": "1700000000", "profile": "male_deep", "type": "voice_transformed", "version": "1.0"},
	}
	for _, m := range metas {
		got := FrequencyOffset(m)
		if got < 0 || got >= 100 {
			t.Fatalf("offset %d for %v outside [0, 100)", got, m)
		}
	}
}

func TestFrequencyOffsetEmptyMetadata(t *testing.T) {
	if got := FrequencyOffset(nil); got != 0 {
		t.Fatalf("nil metadata offset = %d, want 0", got)
	}
	if got := FrequencyOffset(map[string]string{}); got != 0 {
		t.Fatalf("empty metadata offset = %d, want 0", got)
	}
}

func TestFrequencyOffsetIgnoresKeyOrder(t *testing.T) {
	a := FrequencyOffset(map[string]string{"a": "1", "b": "2", "c": "3"})
	b := FrequencyOffset(map[string]string{"c": "3", "a": "1", "b": "2"})
	if a != b {
		t.Fatalf("offset depends on map order: %d vs %d", a, b)
	}
}

func TestSignalAmplitude(t *testing.T) {
	c, err := NewCodec(sampleRate)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	marker := c.Signal(4410, map[string]string{"profile": "robot"})
	if len(marker) != 4410 {
		t.Fatalf("length = %d, want 4410", len(marker))
	}
	for i, v := range marker {
		if math.Abs(v) > Amplitude {
			t.Fatalf("index %d: marker sample %v exceeds amplitude %v", i, v, Amplitude)
		}
	}
}

func TestEmbedPreservesLength(t *testing.T) {
	c, err := NewCodec(sampleRate)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	in := testutil.DeterministicSine(440, sampleRate, 0.5, 44100)
	out := c.Embed(in, nil)
	if len(out) != len(in) {
		t.Fatalf("length = %d, want %d", len(out), len(in))
	}

	diff, err := testutil.MaxAbsDiff(out, in)
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}
	if diff == 0 {
		t.Fatal("embed left the signal unchanged")
	}
	if diff > Amplitude+1e-12 {
		t.Fatalf("embed changed samples by %v, more than the marker amplitude", diff)
	}
}

func TestEmbedRescalesNearClipping(t *testing.T) {
	c, err := NewCodec(sampleRate)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	// Full-scale DC plus any positive marker sample pushes past 1.0.
	in := testutil.DC(1.0, 44100)
	out := c.Embed(in, nil)

	peak := 0.0
	for _, v := range out {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak > 0.95+1e-9 {
		t.Fatalf("peak %v exceeds the 0.95 rescale target", peak)
	}
}

func TestEmbedEmptyInput(t *testing.T) {
	c, err := NewCodec(sampleRate)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	if out := c.Embed(nil, nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %d samples", len(out))
	}
}

func TestDetectRoundTrip(t *testing.T) {
	c, err := NewCodec(sampleRate)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	in := testutil.DeterministicSine(440, sampleRate, 0.5, 44100)
	marked := c.Embed(in, map[string]string{"profile": "robot", "type": "voice_transformed"})

	det, err := c.Detect(marked)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !det.Detected {
		t.Fatalf("marker not detected: ratio %v", det.EnergyRatio)
	}
	if det.Confidence <= 0 || det.Confidence > 1 {
		t.Fatalf("confidence %v outside (0, 1]", det.Confidence)
	}
	if det.FrequencyOffset < -int(bandBelow) || det.FrequencyOffset > int(bandAbove) {
		t.Fatalf("frequency offset %d outside the marker band", det.FrequencyOffset)
	}
}

func TestDetectRecoversExactOffset(t *testing.T) {
	c, err := NewCodec(sampleRate)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	// One second pads to 65536 bins (0.67 Hz apart), so the peak sits within
	// a third of a hertz of the carrier and rounding recovers the offset
	// exactly.
	in := testutil.DeterministicSine(440, sampleRate, 0.5, 44100)
	metas := []map[string]string{
		{"profile": "robot", "type": "voice_transformed"},
		{"timestamp": "1700000000", "profile": "male_deep", "type": "voice_transformed", "version": "1.0"},
	}
	for _, meta := range metas {
		marked := c.Embed(in, meta)
		det, err := c.Detect(marked)
		if err != nil {
			t.Fatalf("Detect: %v", err)
		}
		if !det.Detected {
			t.Fatalf("marker not detected for %v: ratio %v", meta, det.EnergyRatio)
		}
		if want := FrequencyOffset(meta); det.FrequencyOffset != want {
			t.Fatalf("offset = %d, want %d for %v", det.FrequencyOffset, want, meta)
		}
	}
}

func TestDetectCleanAudio(t *testing.T) {
	c, err := NewCodec(sampleRate)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	in := testutil.DeterministicSine(440, sampleRate, 0.5, 44100)
	det, err := c.Detect(in)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if det.Detected {
		t.Fatalf("clean sine falsely detected: ratio %v", det.EnergyRatio)
	}
}

func TestDetectTooShort(t *testing.T) {
	c, err := NewCodec(sampleRate)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	in := c.Signal(1024, nil)
	det, err := c.Detect(in)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if det.Detected {
		t.Fatal("sub-100ms signal should never be detected")
	}
}

func TestDetectSilence(t *testing.T) {
	c, err := NewCodec(sampleRate)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	det, err := c.Detect(make([]float64, 44100))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if det.Detected {
		t.Fatal("silence falsely detected")
	}
}
