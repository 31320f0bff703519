package scan

import (
	"context"
	"sync"
)

// Queue is an unbounded FIFO of paths shared by one producer and many
// consumers. Closing it marks the end of production.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []string
	head   int
	closed bool
	pushed int
}

// NewQueue returns an empty, open queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends path and wakes one waiting consumer.
func (q *Queue) Push(path string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.items = append(q.items, path)
	q.pushed++
	q.cond.Signal()
	return nil
}

// TryPop removes and returns the oldest path. It never blocks.
func (q *Queue) TryPop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head == len(q.items) {
		return "", false
	}
	path := q.items[q.head]
	q.items[q.head] = ""
	q.head++
	if q.head == len(q.items) {
		// reuse the backing array once fully drained
		q.items = q.items[:0]
		q.head = 0
	}
	return path, true
}

// Close marks the end of production and wakes every waiter. Only the first
// call has an effect.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Drained reports whether the queue is closed and empty, meaning no path
// will ever be returned by TryPop again.
func (q *Queue) Drained() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed && q.head == len(q.items)
}

// Len returns the number of pending paths.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Pushed returns the number of successful Push calls.
func (q *Queue) Pushed() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pushed
}

// Wait blocks until a path is pending, the queue is closed, or ctx is done.
// The lock is released while waiting. Callers must re-check with TryPop and
// Drained after Wait returns.
func (q *Queue) Wait(ctx context.Context) {
	stop := context.AfterFunc(ctx, q.wake)
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()
	for q.head == len(q.items) && !q.closed && ctx.Err() == nil {
		q.cond.Wait()
	}
}

func (q *Queue) wake() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cond.Broadcast()
}
