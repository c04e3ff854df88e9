package offload

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// InfrastructureError reports that the pool itself could not execute a
// unit of work. It is distinct from any error the work returns.
type InfrastructureError struct {
	Reason string
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("offload: %s", e.Reason)
}

// Pool is a fixed-size background worker pool for blocking work.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewPool starts a pool with the given number of workers. A count of
// zero or less defaults to runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	// Buffered so submission does not wait on a free worker; a full
	// queue applies backpressure to the submitter.
	p := &Pool{tasks: make(chan func(), 64)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Close stops accepting work and waits for in-flight tasks to finish.
// Work submitted after Close resolves to an InfrastructureError.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}

// submit queues fn, or reports false if the pool is closed. The lock
// spans the send so Close cannot close the channel under a sender.
func (p *Pool) submit(fn func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.tasks <- fn
	return true
}

// ---------------------------------------------------------------------------
// Task: a one-shot future
// ---------------------------------------------------------------------------

// Task is the pending result of one unit of background work.
type Task[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go submits blocking work to the pool and returns a Task resolving to
// its result. Tasks are independent: no ordering is promised between two
// concurrently spawned units. A panic inside work resolves the task to
// an InfrastructureError instead of crashing the worker.
func Go[T any](p *Pool, work func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	ok := p.submit(func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = &InfrastructureError{Reason: fmt.Sprintf("work panicked: %v", r)}
			}
		}()
		t.val, t.err = work()
	})
	if !ok {
		t.err = &InfrastructureError{Reason: "pool is closed"}
		close(t.done)
	}
	return t
}

// Done returns a channel closed when the task has resolved.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Await suspends until the task resolves or ctx is cancelled. On
// cancellation the background work keeps running; its eventual result is
// simply discarded.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
