package importer

import (
	"context"
	"sync"
	"time"
)

type task func(ctx context.Context) error

type result struct {
	Err error
}

// workerPool bounds concurrency and request rate for batch imports so a
// big URL list does not hammer the target sites or the model API.
type workerPool struct {
	workers int
	tasks   chan task

	wg     sync.WaitGroup
	mu     sync.Mutex
	ticker *time.Ticker
	rate   <-chan time.Time
}

func newWorkerPool(workers, buffer int) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &workerPool{workers: workers, tasks: make(chan task, buffer)}
}

func (p *workerPool) setRateLimit(rps int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	if rps <= 0 {
		return
	}
	t := time.NewTicker(time.Second / time.Duration(rps))
	p.ticker = t
	p.rate = t.C
}

func (p *workerPool) submit(t task) {
	if t != nil {
		p.tasks <- t
	}
}

func (p *workerPool) close() {
	p.mu.Lock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	p.mu.Unlock()
	close(p.tasks)
}

func (p *workerPool) run(ctx context.Context) <-chan result {
	out := make(chan result, p.workers)

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

					p.mu.Lock()
					rate := p.rate
					p.mu.Unlock()
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}

					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- result{Err: err}:
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
