// Package queue defines the contract for enqueuing and consuming
// evaluation requests.
//
// Implementations may use channels or more advanced structures; the
// default is an in-memory bounded queue.
package queue

import (
	"context"
	"sync"

	"github.com/okian/stacksafe/internal/domain/model"
	"github.com/okian/stacksafe/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 100000
)

// Evaluation represents the payload type flowing through the queue.
type Evaluation = model.Evaluation

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds an evaluation to the queue.
	// Returns false if the queue is full and the evaluation was not enqueued.
	Enqueue(ctx context.Context, e Evaluation) bool

	// Dequeue returns a channel that will receive evaluations as they
	// become available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Evaluation

	// Len returns the current number of queued evaluations.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue. After closing, no new
	// evaluations can be enqueued and the dequeue channel is closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	evaluations chan Evaluation
	capacity    int
	mu          sync.RWMutex
	closed      bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.evaluations = make(chan Evaluation, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds an evaluation to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, e Evaluation) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return false
	}

	select {
	case q.evaluations <- e:
		metrics.RecordQueueEnqueue()
		q.updateGauges()
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		return false
	default:
		// queue is full
		metrics.RecordQueueEnqueueError()
		return false
	}
}

// Dequeue returns a channel receiving evaluations as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Evaluation {
	out := make(chan Evaluation)
	go func() {
		defer close(out)
		for e := range q.evaluations {
			select {
			case out <- e:
				metrics.RecordQueueDequeue()
				q.updateGauges()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued evaluations.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.evaluations)
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.evaluations)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func (q *InMemoryQueue) updateGauges() {
	size := len(q.evaluations)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}
