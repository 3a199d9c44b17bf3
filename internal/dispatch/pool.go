package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/lk16/flippy/referee/internal/othello"
)

var (
	// ErrPoolClosed is returned when work is submitted to a closed pool, or when it is closed twice.
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrWorkerFault is returned when a task panics. It indicates a programming error.
	ErrWorkerFault = errors.New("worker fault")

	// ErrBatchTooLarge is returned when a batch has more tasks than the pool has workers.
	ErrBatchTooLarge = errors.New("batch exceeds pool size")
)

// ScanTask looks for a legal move. The bool is false when nothing was found.
type ScanTask func() (othello.Coordinate, bool)

// MutationTask writes to a board that is private to its batch.
type MutationTask func()

// job is a single task of a batch, as seen by a worker.
type job struct {
	run  func()
	done func(err error)
}

// Pool is a fixed set of workers shared by all batches of an engine.
type Pool struct {
	size int
	jobs chan job

	// closeMutex protects closed. Submitters hold the read lock while queueing jobs.
	closeMutex sync.RWMutex
	closed     bool

	workers sync.WaitGroup
}

// NewPool starts a pool with the given number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		panic(fmt.Sprintf("invalid worker count: %d", workers))
	}

	p := &Pool{
		size: workers,
		jobs: make(chan job, workers),
	}

	p.workers.Add(workers)
	for range workers {
		go p.work()
	}

	slog.Debug("Worker pool started", "workers", workers)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) work() {
	defer p.workers.Done()

	for j := range p.jobs {
		j.done(runTask(j.run))
	}
}

// runTask runs fn and turns a panic into an error.
func runTask(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Task panicked", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrWorkerFault, r)
		}
	}()

	fn()
	return nil
}

// runBatch runs all tasks on the pool and waits for every one of them to finish.
// It returns the first fault, if any.
func (p *Pool) runBatch(tasks []func()) error {
	if len(tasks) > p.size {
		return fmt.Errorf("%w: %d tasks for %d workers", ErrBatchTooLarge, len(tasks), p.size)
	}

	p.closeMutex.RLock()
	defer p.closeMutex.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	var (
		wg       sync.WaitGroup
		errMutex sync.Mutex
		firstErr error
	)

	done := func(err error) {
		if err != nil {
			errMutex.Lock()
			if firstErr == nil {
				firstErr = err
			}
			errMutex.Unlock()
		}
		wg.Done()
	}

	wg.Add(len(tasks))
	for _, task := range tasks {
		p.jobs <- job{run: task, done: done}
	}
	wg.Wait()

	return firstErr
}

// CollectLegalMoves runs all scan tasks and returns the set of found coordinates.
// Duplicates collapse. If any task faults, no result is returned.
func (p *Pool) CollectLegalMoves(tasks []ScanTask) (map[othello.Coordinate]struct{}, error) {
	type result struct {
		coordinate othello.Coordinate
		ok         bool
	}

	// Each task writes only its own slot.
	results := make([]result, len(tasks))

	batch := make([]func(), len(tasks))
	for i, task := range tasks {
		batch[i] = func() {
			c, ok := task()
			results[i] = result{coordinate: c, ok: ok}
		}
	}

	if err := p.runBatch(batch); err != nil {
		return nil, fmt.Errorf("failed to collect legal moves: %w", err)
	}

	moves := make(map[othello.Coordinate]struct{})
	for _, r := range results {
		if r.ok {
			moves[r.coordinate] = struct{}{}
		}
	}

	return moves, nil
}

// ApplyAllCaptures runs all mutation tasks and returns once every one has finished.
// The tasks must not write overlapping cells.
func (p *Pool) ApplyAllCaptures(tasks []MutationTask) error {
	batch := make([]func(), len(tasks))
	for i, task := range tasks {
		batch[i] = task
	}

	if err := p.runBatch(batch); err != nil {
		return fmt.Errorf("failed to apply captures: %w", err)
	}

	return nil
}

// Close stops all workers and waits for them to exit. Batches in progress finish first.
func (p *Pool) Close() error {
	p.closeMutex.Lock()
	defer p.closeMutex.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	p.closed = true
	close(p.jobs)
	p.workers.Wait()

	slog.Debug("Worker pool stopped", "workers", p.size)
	return nil
}
