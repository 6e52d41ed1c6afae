package llm

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var ErrPoolClosed = errors.New("worker pool is closed")

type HandlerFunc func(ctx context.Context, prompt string) (string, error)

type result struct {
	output string
	err    error
}

type job struct {
	ctx    context.Context
	prompt string
	done   chan result
}

// Pool runs blocking generation calls on a fixed number of workers. Jobs
// beyond capacity wait in the queue.
type Pool struct {
	jobs    chan *job
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	handler HandlerFunc
}

func NewPool(ctx context.Context, maxWorkers, queueSize int, handler HandlerFunc) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 3
	}
	if queueSize < 1 {
		queueSize = 100
	}

	poolCtx, cancel := context.WithCancel(ctx)

	pool := &Pool{
		jobs:    make(chan *job, queueSize),
		ctx:     poolCtx,
		cancel:  cancel,
		handler: handler,
	}

	for i := 0; i < maxWorkers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case j := <-p.jobs:
			p.process(j)
		}
	}
}

func (p *Pool) process(j *job) {
	// the submitter already gave up
	if err := j.ctx.Err(); err != nil {
		j.done <- result{err: err}
		return
	}

	output, err := p.handler(j.ctx, j.prompt)
	if err != nil {
		slog.Error("generation failed", "err", err)
	}

	j.done <- result{output: output, err: err}
}

// Submit queues the prompt and waits for a worker to finish it. Blocks while
// the queue is full (backpressure).
func (p *Pool) Submit(ctx context.Context, prompt string) (string, error) {
	if p.ctx.Err() != nil {
		return "", ErrPoolClosed
	}

	j := &job{
		ctx:    ctx,
		prompt: prompt,
		done:   make(chan result, 1),
	}

	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.ctx.Done():
		return "", ErrPoolClosed
	}

	select {
	case res := <-j.done:
		return res.output, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.ctx.Done():
		return "", ErrPoolClosed
	}
}

// Stop cancels the pool and waits for running jobs to return.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
}
