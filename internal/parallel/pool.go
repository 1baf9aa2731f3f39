// Package parallel fans per-pixel work out across goroutines.
//
// Effect kernels are pure functions of their inputs, so a stage is split
// into horizontal bands of rows and the bands are shaded concurrently. A
// stage returns only after every band has completed.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines that execute batches of work.
//
// Each worker owns a queue. An idle worker steals from the other queues
// before blocking, which keeps bands of uneven cost balanced.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// dispatch is held for reading while a batch is being queued and for
	// writing while Close stops the workers.
	dispatch sync.RWMutex
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			drain(own)
			return
		case work := <-own:
			work()
			continue
		default:
		}

		if stolen := p.steal(id); stolen != nil {
			stolen()
			continue
		}

		select {
		case <-p.done:
			drain(own)
			return
		case work := <-own:
			work()
		}
	}
}

func drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll runs every item and waits for all of them to finish.
//
// Items are dealt round-robin to the worker queues. Once the pool is
// closed, ExecuteAll runs the items on the calling goroutine, so a batch
// is never silently dropped. A Close racing with ExecuteAll waits until
// the batch is queued, and the queued items still run.
//
// Work items must not call ExecuteAll on the same pool.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	p.dispatch.RLock()
	if !p.IsRunning() {
		p.dispatch.RUnlock()
		for _, fn := range work {
			fn()
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for i, fn := range work {
		p.queues[i%p.workers] <- func() {
			defer wg.Done()
			fn()
		}
	}
	p.dispatch.RUnlock()
	wg.Wait()
}

// ExecuteRows splits rows [y0, y1) into contiguous bands, one or more per
// worker, and calls fn once per band with its half-open row range.
func (p *WorkerPool) ExecuteRows(y0, y1 int, fn func(from, to int)) {
	n := y1 - y0
	if n <= 0 {
		return
	}

	bands := min(p.workers*2, n)
	step := (n + bands - 1) / bands

	work := make([]func(), 0, bands)
	for from := y0; from < y1; from += step {
		to := min(from+step, y1)
		work = append(work, func() { fn(from, to) })
	}
	p.ExecuteAll(work)
}

// Close stops the workers after the queued work has drained.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	p.dispatch.Lock()
	close(p.done)
	p.dispatch.Unlock()
	p.wg.Wait()

	for _, q := range p.queues {
		drain(q)
	}
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still dispatches to its workers.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
