package ingest

import (
	"context"
	"sync"
	"time"
)

type Task func(ctx context.Context) error

type Result struct {
	Name string
	Err  error
}

type namedTask struct {
	name string
	run  Task
}

// WorkerPool runs submitted tasks on a fixed number of goroutines, optionally
// throttled to a number of task starts per second.
type WorkerPool struct {
	workers int
	tasks   chan namedTask
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  *time.Ticker
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan namedTask, buffer),
	}
}

func (p *WorkerPool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTicker()
	if rps <= 0 {
		return
	}
	p.ticker = time.NewTicker(time.Second / time.Duration(rps))
	p.rate = p.ticker.C
}

// stopTicker requires mu.
func (p *WorkerPool) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
}

// Submit blocks once the buffer is full and no worker is free.
func (p *WorkerPool) Submit(name string, t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- namedTask{name: name, run: t}
}

func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.stopTicker()
	p.mu.Unlock()
	close(p.tasks)
}

// Run starts the workers. The returned channel closes after Close has been
// called and every task has finished, or ctx is done.
func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, cap(p.tasks)+p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					p.mu.RLock()
					rate := p.rate
					p.mu.RUnlock()
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					err := t.run(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Name: t.name, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
