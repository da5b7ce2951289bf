package pipeline

import (
	"errors"

	"github.com/cwbudde/algo-voice/dsp/core"
)

// ErrDevice wraps any capture or render stream acquisition failure.
var ErrDevice = errors.New("pipeline: device error")

// Stream is one running direction of audio I/O. Close stops the callbacks
// and releases the device; it must be safe to call once after a successful
// open.
type Stream interface {
	Close() error
}

// Driver opens audio streams. A capture stream invokes submit with each
// recorded block; a render stream invokes fill with a buffer to be written.
// Both callbacks run on driver threads and must never block, which the
// pipeline guarantees by using non-blocking queue operations only.
type Driver interface {
	OpenCapture(cfg core.ProcessorConfig, submit func(block []float64)) (Stream, error)
	OpenRender(cfg core.ProcessorConfig, fill func(block []float64)) (Stream, error)
}
