// Package pipeline implements the real-time voice transformation core: two
// bounded single-producer single-consumer queues between the driver callbacks
// and one worker goroutine that applies the active profile's effect chain and
// the optional provenance watermark to each block.
//
// Driver callbacks never block. A full capture queue drops its oldest block,
// an empty render queue yields silence, and both conditions are counted
// rather than surfaced as errors on the realtime path.
package pipeline

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-voice/dsp/core"
	"github.com/cwbudde/algo-voice/voice"
	"github.com/cwbudde/algo-voice/watermark"
)

const (
	defaultQueueCapacity  = 16
	defaultDequeueTimeout = 100 * time.Millisecond
	defaultStopTimeout    = 2 * time.Second
)

// Option mutates pipeline construction parameters.
type Option func(*config) error

type config struct {
	core          core.ProcessorConfig
	queueCapacity int
	watermarking  bool
	dequeue       time.Duration
	stopTimeout   time.Duration
	seed          int64
}

// WithProcessorOptions applies sample rate and block size options.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(cfg *config) error {
		cfg.core = core.ApplyProcessorOptions(append([]core.ProcessorOption{
			core.WithSampleRate(cfg.core.SampleRate),
			core.WithBlockSize(cfg.core.BlockSize),
		}, opts...)...)
		return nil
	}
}

// WithQueueCapacity sets the capture and render queue capacity in blocks.
func WithQueueCapacity(capacity int) Option {
	return func(cfg *config) error {
		if capacity < 1 {
			return fmt.Errorf("pipeline: queue capacity must be >= 1: %d", capacity)
		}
		cfg.queueCapacity = capacity
		return nil
	}
}

// WithWatermarking toggles provenance marker embedding on processed blocks.
func WithWatermarking(enabled bool) Option {
	return func(cfg *config) error {
		cfg.watermarking = enabled
		return nil
	}
}

// WithDequeueTimeout sets how long the worker waits for a block before
// re-checking the running flag.
func WithDequeueTimeout(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return fmt.Errorf("pipeline: dequeue timeout must be > 0: %v", d)
		}
		cfg.dequeue = d
		return nil
	}
}

// WithStopTimeout bounds how long Stop waits for the worker to exit.
func WithStopTimeout(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return fmt.Errorf("pipeline: stop timeout must be > 0: %v", d)
		}
		cfg.stopTimeout = d
		return nil
	}
}

// WithSeed sets the random seed for the transformer's noise-based stages.
func WithSeed(seed int64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// Stats is a snapshot of the pipeline counters.
type Stats struct {
	Processed     uint64
	InputDropped  uint64
	OutputDropped uint64
	SilenceBlocks uint64
	TransformErrs uint64
}

// Pipeline owns the capture and render queues, the worker goroutine and the
// active profile. Configure may be called at any time, including while the
// pipeline runs; the new profile takes effect on the next block boundary.
type Pipeline struct {
	cfg         config
	driver      Driver
	transformer *voice.Transformer
	codec       *watermark.Codec

	profile atomic.Pointer[voice.Profile]

	input  *blockQueue
	output *blockQueue
	free   chan []float64

	mu      sync.Mutex
	running atomic.Bool
	done    chan struct{}
	capture Stream
	render  Stream

	processed     atomic.Uint64
	silence       atomic.Uint64
	transformErrs atomic.Uint64
}

// New creates a pipeline on the given driver with the original (identity)
// profile active.
func New(driver Driver, opts ...Option) (*Pipeline, error) {
	if driver == nil {
		return nil, fmt.Errorf("pipeline: driver must not be nil")
	}

	cfg := config{
		core:          core.DefaultProcessorConfig(),
		queueCapacity: defaultQueueCapacity,
		watermarking:  true,
		dequeue:       defaultDequeueTimeout,
		stopTimeout:   defaultStopTimeout,
		seed:          1,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	transformer, err := voice.NewTransformer(cfg.core.SampleRate, voice.WithTransformerSeed(cfg.seed))
	if err != nil {
		return nil, err
	}
	codec, err := watermark.NewCodec(cfg.core.SampleRate)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:         cfg,
		driver:      driver,
		transformer: transformer,
		codec:       codec,
		input:       newBlockQueue(cfg.queueCapacity),
		output:      newBlockQueue(cfg.queueCapacity),
		free:        make(chan []float64, cfg.queueCapacity),
	}
	p.profile.Store(&voice.Profile{
		Name:         "original",
		PitchShift:   1.0,
		FormantShift: 1.0,
	})
	return p, nil
}

// Config returns the processor configuration the pipeline runs with.
func (p *Pipeline) Config() core.ProcessorConfig { return p.cfg.core }

// Configure replaces the active profile. The swap is atomic: the worker sees
// either the previous or the new profile for any given block, never a mix.
func (p *Pipeline) Configure(profile *voice.Profile) error {
	if profile == nil {
		return fmt.Errorf("%w: nil profile", voice.ErrInvalidProfile)
	}
	if err := profile.Validate(); err != nil {
		return err
	}
	p.profile.Store(profile.Clone())
	return nil
}

// ActiveProfile returns a copy of the currently active profile.
func (p *Pipeline) ActiveProfile() *voice.Profile {
	return p.profile.Load().Clone()
}

// Running reports whether the pipeline has been started and not yet stopped.
func (p *Pipeline) Running() bool { return p.running.Load() }

// Start opens the capture and render streams and spawns the worker. A stream
// acquisition failure is reported wrapped in ErrDevice, and any stream opened
// before the failure is closed again. Starting a running pipeline is a no-op.
func (p *Pipeline) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running.Load() {
		return nil
	}

	capture, err := p.driver.OpenCapture(p.cfg.core, p.Submit)
	if err != nil {
		return fmt.Errorf("%w: capture: %v", ErrDevice, err)
	}

	render, err := p.driver.OpenRender(p.cfg.core, p.RetrieveInto)
	if err != nil {
		capture.Close()
		return fmt.Errorf("%w: render: %v", ErrDevice, err)
	}

	p.capture = capture
	p.render = render
	p.done = make(chan struct{})
	p.running.Store(true)
	go p.worker(p.done)
	return nil
}

// Stop signals the worker, closes both streams, joins the worker within the
// stop timeout and drains both queues. Stopping a stopped pipeline is a
// no-op.
func (p *Pipeline) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running.Load() {
		return nil
	}
	p.running.Store(false)

	var firstErr error
	if p.capture != nil {
		if err := p.capture.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.capture = nil
	}
	if p.render != nil {
		if err := p.render.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.render = nil
	}

	select {
	case <-p.done:
	case <-time.After(p.cfg.stopTimeout):
		if firstErr == nil {
			firstErr = fmt.Errorf("pipeline: worker did not stop within %v", p.cfg.stopTimeout)
		}
	}

	p.input.drain()
	p.output.drain()
	return firstErr
}

// Submit hands a captured block to the pipeline. It never blocks; on a full
// input queue the oldest pending block is dropped and counted. The block is
// copied into an owned buffer (recycled from RetrieveInto when one is
// available), so the caller may reuse its own.
func (p *Pipeline) Submit(block []float64) {
	var owned []float64
	select {
	case owned = <-p.free:
	default:
	}
	owned = core.EnsureLen(owned, len(block))
	core.CopyInto(owned, block)
	p.input.push(owned)
}

// RetrieveInto fills dst with the next processed block. It never blocks; on
// an empty output queue dst is zeroed (silence) and the silence counter
// increments. Retired blocks go back to the free list for Submit to reuse.
func (p *Pipeline) RetrieveInto(dst []float64) {
	block, ok := p.output.tryPop()
	if !ok {
		core.Zero(dst)
		p.silence.Add(1)
		return
	}

	n := core.CopyInto(dst, block)
	core.Zero(dst[n:])
	select {
	case p.free <- block:
	default:
	}
}

// Stats returns a snapshot of the pipeline counters.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Processed:     p.processed.Load(),
		InputDropped:  p.input.droppedCount(),
		OutputDropped: p.output.droppedCount(),
		SilenceBlocks: p.silence.Load(),
		TransformErrs: p.transformErrs.Load(),
	}
}

func (p *Pipeline) worker(done chan<- struct{}) {
	defer close(done)

	for p.running.Load() {
		block, ok := p.input.pop(p.cfg.dequeue)
		if !ok {
			continue
		}

		profile := p.profile.Load()
		out, err := p.transformer.Transform(block, profile)
		if err != nil {
			p.transformErrs.Add(1)
			continue
		}

		if p.cfg.watermarking {
			out = p.codec.Embed(out, map[string]string{
				"profile": profile.Name,
				"type":    "voice_transformed",
				"version": "1.0",
			})
		}

		p.output.push(out)
		p.processed.Add(1)
	}
}

// Transform is the pure function path used by offline callers: it applies the
// given profile to one block, bypassing the queues, and always returns a
// block of the input length.
func (p *Pipeline) Transform(block []float64, profile *voice.Profile) ([]float64, error) {
	return p.transformer.Transform(block, profile)
}

// EmbedWatermark adds the provenance marker to a block.
func (p *Pipeline) EmbedWatermark(block []float64, metadata map[string]string) []float64 {
	return p.codec.Embed(block, metadata)
}

// DetectWatermark scans a block for the provenance marker.
func (p *Pipeline) DetectWatermark(block []float64) (watermark.Detection, error) {
	return p.codec.Detect(block)
}

// SilenceBlock returns an all-zero block of the configured block size.
func (p *Pipeline) SilenceBlock() []float64 {
	return make([]float64, p.cfg.core.BlockSize)
}

// BlockDuration returns the duration of one block at the configured rate.
func (p *Pipeline) BlockDuration() time.Duration {
	seconds := float64(p.cfg.core.BlockSize) / p.cfg.core.SampleRate
	return time.Duration(math.Round(seconds * float64(time.Second)))
}
