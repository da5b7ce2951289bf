// Package wavio reads and writes the canonical on-disk audio format: mono,
// 16-bit little-endian PCM WAV, samples scaled by 32767.
package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// ErrFormat is returned when a file is not mono 16-bit PCM WAV.
var ErrFormat = errors.New("wavio: unsupported format")

const (
	pcmFormat   = 1
	sampleScale = 32767
)

// Write saves samples to path. Values outside [-1, 1] are clamped to the
// 16-bit range rather than wrapped.
func Write(path string, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be > 0: %d", sampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()

	dataSize := uint32(len(samples) * 2)
	byteRate := uint32(sampleRate * 2)

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(header[22:24], 1) // mono
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], 2) // block align
	binary.LittleEndian.PutUint16(header[34:36], 16)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := f.Write(header[:]); err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	buf := make([]byte, len(samples)*2)
	for i, v := range samples {
		s := int32(math.Round(v * sampleScale))
		if s > math.MaxInt16 {
			s = math.MaxInt16
		} else if s < math.MinInt16 {
			s = math.MinInt16
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(s)))
	}
	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("wavio: %w", err)
	}
	return f.Close()
}

// Read loads a mono 16-bit PCM WAV file, returning the samples scaled to
// [-1, 1] and the file's sample rate.
func Read(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()

	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return nil, 0, fmt.Errorf("wavio: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("%w: not a RIFF/WAVE file", ErrFormat)
	}

	var (
		sampleRate int
		haveFormat bool
	)
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(f, chunk[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, 0, fmt.Errorf("%w: missing data chunk", ErrFormat)
			}
			return nil, 0, fmt.Errorf("wavio: %w", err)
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			fmtChunk := make([]byte, size)
			if _, err := io.ReadFull(f, fmtChunk); err != nil {
				return nil, 0, fmt.Errorf("wavio: %w", err)
			}
			if len(fmtChunk) < 16 {
				return nil, 0, fmt.Errorf("%w: short fmt chunk", ErrFormat)
			}
			format := binary.LittleEndian.Uint16(fmtChunk[0:2])
			channels := binary.LittleEndian.Uint16(fmtChunk[2:4])
			bits := binary.LittleEndian.Uint16(fmtChunk[14:16])
			if format != pcmFormat || channels != 1 || bits != 16 {
				return nil, 0, fmt.Errorf("%w: want mono 16-bit PCM, got format=%d channels=%d bits=%d",
					ErrFormat, format, channels, bits)
			}
			sampleRate = int(binary.LittleEndian.Uint32(fmtChunk[4:8]))
			haveFormat = true

		case "data":
			if !haveFormat {
				return nil, 0, fmt.Errorf("%w: data chunk before fmt chunk", ErrFormat)
			}
			raw := make([]byte, size)
			if _, err := io.ReadFull(f, raw); err != nil {
				return nil, 0, fmt.Errorf("wavio: %w", err)
			}
			samples := make([]float64, len(raw)/2)
			for i := range samples {
				s := int16(binary.LittleEndian.Uint16(raw[i*2:]))
				samples[i] = float64(s) / sampleScale
			}
			return samples, sampleRate, nil

		default:
			// Skip unknown chunks, padded to even size.
			skip := int64(size)
			if size%2 == 1 {
				skip++
			}
			if _, err := f.Seek(skip, io.SeekCurrent); err != nil {
				return nil, 0, fmt.Errorf("wavio: %w", err)
			}
		}
	}
}
