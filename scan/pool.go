package scan

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/dendrascience/checkzip/inspect"
)

// DefaultWorkers is the pool size used when none is configured.
func DefaultWorkers() int {
	return max(runtime.NumCPU(), 1)
}

// Pool validates queued paths with a fixed number of workers.
type Pool struct {
	Size       int
	Root       string
	Inspector  inspect.Inspector
	Queue      *Queue
	Aggregator *Aggregator
	Observer   Observer
	Logger     *slog.Logger
}

// Run starts the workers and blocks until every one of them has returned.
// Workers return once the queue is drained or ctx is done. A worker that
// panics outside the inspector call is reported in the returned slice; the
// others keep running and are still joined.
func (p *Pool) Run(ctx context.Context) []*WorkerError {
	size := max(p.Size, 1)
	if p.Logger == nil {
		p.Logger = slog.New(slog.DiscardHandler)
	}
	if p.Observer == nil {
		p.Observer = Observers(nil)
	}

	// one slot per worker, so no lock is needed to collect failures
	failures := make([]*WorkerError, size)

	var wg sync.WaitGroup
	for i := range size {
		wg.Go(func() {
			failures[i] = p.work(ctx, i+1)
		})
	}
	wg.Wait()

	var out []*WorkerError
	for _, f := range failures {
		if f != nil {
			p.Logger.Error("worker terminated abnormally",
				slog.Int("worker", f.Worker),
				slog.Any("panic", f.Value),
				slog.String("stack", string(f.Stack)))
			out = append(out, f)
		}
	}
	return out
}

func (p *Pool) work(ctx context.Context, id int) (failure *WorkerError) {
	defer func() {
		if v := recover(); v != nil {
			failure = &WorkerError{Worker: id, Value: v, Stack: debug.Stack()}
		}
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}
		path, ok := p.Queue.TryPop()
		if !ok {
			if p.Queue.Drained() {
				return nil
			}
			p.Queue.Wait(ctx)
			continue
		}
		p.handle(ctx, id, path)
	}
}

func (p *Pool) handle(ctx context.Context, id int, path string) {
	started := time.Now()
	outcome := p.inspect(ctx, path)
	finished := time.Now()

	e := Entry{
		Path:     path,
		RelPath:  Rel(p.Root, path),
		Outcome:  outcome,
		Time:     finished,
		Worker:   id,
		Duration: finished.Sub(started),
	}
	c := p.Aggregator.Record(e)
	p.Logger.Debug("archive checked",
		slog.String("path", e.RelPath),
		slog.String("outcome", outcome.Kind.String()),
		slog.Int("worker", id),
		slog.Duration("took", e.Duration))
	p.Observer.OnOutcome(e, c)
}

// inspect runs the inspector and turns a panic into a Corrupted outcome so
// the path is still counted.
func (p *Pool) inspect(ctx context.Context, path string) (out inspect.Outcome) {
	defer func() {
		if v := recover(); v != nil {
			p.Logger.Error("inspector panicked", slog.String("path", path), slog.Any("panic", v))
			out = inspect.Damaged("inspector panic: %v", v)
		}
	}()
	return p.Inspector.Inspect(ctx, path)
}
