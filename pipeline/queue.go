package pipeline

import (
	"sync/atomic"
	"time"
)

// blockQueue is a bounded single-producer single-consumer block queue with
// drop-oldest overflow semantics.
type blockQueue struct {
	ch      chan []float64
	dropped atomic.Uint64
}

func newBlockQueue(capacity int) *blockQueue {
	return &blockQueue{ch: make(chan []float64, capacity)}
}

// push enqueues without blocking. On a full queue the oldest pending block is
// discarded (counted as dropped) to make room.
func (q *blockQueue) push(block []float64) {
	select {
	case q.ch <- block:
		return
	default:
	}

	select {
	case <-q.ch:
		q.dropped.Add(1)
	default:
	}

	select {
	case q.ch <- block:
	default:
		q.dropped.Add(1)
	}
}

// tryPop dequeues without blocking.
func (q *blockQueue) tryPop() ([]float64, bool) {
	select {
	case block := <-q.ch:
		return block, true
	default:
		return nil, false
	}
}

// pop dequeues, waiting up to timeout.
func (q *blockQueue) pop(timeout time.Duration) ([]float64, bool) {
	select {
	case block := <-q.ch:
		return block, true
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case block := <-q.ch:
		return block, true
	case <-timer.C:
		return nil, false
	}
}

// drain discards all pending blocks.
func (q *blockQueue) drain() {
	for {
		select {
		case <-q.ch:
		default:
			return
		}
	}
}

// droppedCount returns the number of blocks discarded on overflow.
func (q *blockQueue) droppedCount() uint64 {
	return q.dropped.Load()
}
