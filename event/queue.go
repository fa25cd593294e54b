package event

import (
	"sync/atomic"

	"github.com/lixenwraith/glyphfall/parameter"
)

// Queue is a lock-free MPSC ring buffer of intents
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (frame loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest intents overwritten when full
type Queue struct {
	intents   [parameter.IntentQueueSize]Intent
	published [parameter.IntentQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                          // Read index
	tail      atomic.Uint64                          // Write index
	notify    chan struct{}
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Push adds an intent using lock-free CAS with published flags pattern
// Safe for concurrent producers. O(1) amortized
func (q *Queue) Push(in Intent) {
	for {
		currentTail := q.tail.Load()
		nextTail := currentTail + 1

		if q.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.IntentBufferMask

			q.intents[idx] = in
			q.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread intents
			currentHead := q.head.Load()
			if nextTail-currentHead > parameter.IntentQueueSize {
				q.head.CompareAndSwap(currentHead, nextTail-parameter.IntentQueueSize)
			}
			break
		}
	}

	// Wake an idle consumer; a pending signal is enough
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Consume returns all pending intents in FIFO order and advances head
// Single-consumer design. Checks published flags for safety
func (q *Queue) Consume() []Intent {
	for {
		currentHead := q.head.Load()
		currentTail := q.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.IntentQueueSize {
			maxAvailable = parameter.IntentQueueSize
			currentHead = currentTail - parameter.IntentQueueSize
		}

		result := make([]Intent, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.IntentBufferMask

			if !q.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, q.intents[idx])
			q.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if q.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns approximate pending intent count
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	diff := int(tail - head)
	if diff > parameter.IntentQueueSize {
		return parameter.IntentQueueSize
	}
	return diff
}

// Ready signals after a Push; lets an idle consumer block instead of polling
func (q *Queue) Ready() <-chan struct{} {
	return q.notify
}
