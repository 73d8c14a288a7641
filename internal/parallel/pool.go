// Package parallel provides the worker pool the engine uses to resolve
// asset references concurrently before a build's synchronous layout pass.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("parallel: pool closed")

// Job is one unit of work. It receives the context passed to Run.
type Job func(ctx context.Context) error

// Pool is a fixed set of goroutines with per-worker queues. Idle workers
// steal from their neighbours' queues so one slow fetch does not hold up
// the jobs queued behind it.
//
// Pool is safe for concurrent use; several builds may share one pool.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup

	// mu orders Run's enqueueing against Close: jobs are only queued
	// while running, and Close waits for enqueueing Runs to finish.
	mu      sync.RWMutex
	running bool
}

// New starts a pool with the given number of workers.
// If workers <= 0, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
		running: true,
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
		default:
			if fn := p.steal(id); fn != nil {
				fn()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case fn := <-own:
				fn()
			}
		}
	}
}

func (p *Pool) drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Run executes all jobs and waits for them. Jobs that have not started
// when ctx is cancelled are skipped and report ctx.Err(). All job errors
// are joined in submission order.
func (p *Pool) Run(ctx context.Context, jobs []Job) error {
	if len(jobs) == 0 {
		return nil
	}
	p.mu.RLock()
	if !p.running {
		p.mu.RUnlock()
		return ErrClosed
	}

	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	wg.Add(len(jobs))

	for i, job := range jobs {
		fn := func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = job(ctx)
		}

		p.queues[i%p.workers] <- fn
	}
	p.mu.RUnlock()

	wg.Wait()
	return errors.Join(errs...)
}

// Close stops accepting work, finishes queued jobs and stops the workers.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}
