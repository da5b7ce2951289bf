package demo

import (
	"sync"
	"time"

	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/pipeline"
)

// SyntheticDriver implements pipeline.Driver with generated speech instead of
// hardware: the capture stream submits blocks of a looping speech sample at
// the real-time block rate, and the render stream polls for processed blocks
// at the same rate and discards them.
type SyntheticDriver struct {
	gen      *SpeechGenerator
	duration float64
}

// NewSyntheticDriver creates a driver looping over duration seconds of
// synthetic speech.
func NewSyntheticDriver(gen *SpeechGenerator, duration float64) *SyntheticDriver {
	return &SyntheticDriver{gen: gen, duration: duration}
}

type syntheticStream struct {
	stop chan struct{}
	once sync.Once
	done chan struct{}
}

func (s *syntheticStream) Close() error {
	s.once.Do(func() { close(s.stop) })
	<-s.done
	return nil
}

func blockInterval(cfg core.ProcessorConfig) time.Duration {
	seconds := float64(cfg.BlockSize) / cfg.SampleRate
	return time.Duration(seconds * float64(time.Second))
}

// OpenCapture starts a goroutine feeding speech blocks to submit.
func (d *SyntheticDriver) OpenCapture(cfg core.ProcessorConfig, submit func(block []float64)) (pipeline.Stream, error) {
	speech := d.gen.Speech(d.duration, 150)
	stream := &syntheticStream{stop: make(chan struct{}), done: make(chan struct{})}

	go func() {
		defer close(stream.done)
		ticker := time.NewTicker(blockInterval(cfg))
		defer ticker.Stop()

		offset := 0
		block := make([]float64, cfg.BlockSize)
		for {
			select {
			case <-stream.stop:
				return
			case <-ticker.C:
				for i := range block {
					if len(speech) == 0 {
						block[i] = 0
						continue
					}
					block[i] = speech[(offset+i)%len(speech)]
				}
				offset = (offset + cfg.BlockSize) % maxInt(len(speech), 1)
				submit(block)
			}
		}
	}()
	return stream, nil
}

// OpenRender starts a goroutine polling fill at the block rate.
func (d *SyntheticDriver) OpenRender(cfg core.ProcessorConfig, fill func(block []float64)) (pipeline.Stream, error) {
	stream := &syntheticStream{stop: make(chan struct{}), done: make(chan struct{})}

	go func() {
		defer close(stream.done)
		ticker := time.NewTicker(blockInterval(cfg))
		defer ticker.Stop()

		block := make([]float64, cfg.BlockSize)
		for {
			select {
			case <-stream.stop:
				return
			case <-ticker.C:
				fill(block)
			}
		}
	}()
	return stream, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
