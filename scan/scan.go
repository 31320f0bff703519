package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dendrascience/checkzip/inspect"
	"github.com/google/uuid"
)

// Options configure one run.
type Options struct {
	// Root is the directory to scan. Empty means the working directory.
	Root string
	// FS replaces os.DirFS(Root) for traversal. Inspected paths are still
	// built from Root.
	FS         fs.FS
	Extensions []string
	Exclude    []string
	// Workers defaults to DefaultWorkers when not positive.
	Workers   int
	Inspector inspect.Inspector
	Observer  Observer
	Logger    *slog.Logger
}

// Run walks opts.Root and validates every matching archive. It returns an
// error only for fatal conditions: a missing or unreadable root, or a root
// that is not a directory. Per-file outcomes and per-directory failures are
// part of the snapshot.
func Run(ctx context.Context, opts Options) (Snapshot, error) {
	if opts.Inspector == nil {
		return Snapshot{}, ErrNoInspector
	}
	root := opts.Root
	if root == "" {
		root = "."
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = os.DirFS(root)
	}
	info, err := fs.Stat(fsys, ".")
	if err != nil {
		return Snapshot{}, fmt.Errorf("stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	observer := opts.Observer
	if observer == nil {
		observer = Observers(nil)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers()
	}

	runID := uuid.NewString()
	logger = logger.With(slog.String("run", runID))
	logger.Info("scan started", slog.String("root", root), slog.Int("workers", workers))

	q := NewQueue()
	agg := NewAggregator()
	walker := &Walker{
		Root:         root,
		FS:           fsys,
		Extensions:   opts.Extensions,
		Exclude:      opts.Exclude,
		Logger:       logger,
		OnDiscovered: observer.OnDiscovered,
		OnDirError: func(err *DirError) {
			agg.RecordDirError(err)
			observer.OnDirError(err)
		},
	}
	pool := &Pool{
		Size:       workers,
		Root:       root,
		Inspector:  opts.Inspector,
		Queue:      q,
		Aggregator: agg,
		Observer:   observer,
		Logger:     logger,
	}

	started := time.Now()
	var (
		walkStats WalkStats
		walkErr   error
		wg        sync.WaitGroup
	)
	wg.Go(func() {
		walkStats, walkErr = walker.Walk(ctx, q)
	})
	workerErrs := pool.Run(ctx)
	wg.Wait()

	snap := agg.Snapshot()
	snap.Root = root
	snap.RunID = runID
	snap.Workers = workers
	snap.Started = started
	snap.Finished = time.Now()
	snap.Discovered = q.Pushed()
	snap.WorkerErrors = workerErrs
	snap.Interrupted = ctx.Err() != nil

	if walkErr != nil {
		return snap, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	logger.Info("scan finished",
		slog.Int("dirs", walkStats.Dirs),
		slog.Int("discovered", snap.Discovered),
		slog.Int("total", snap.Counters.Total),
		slog.Int("corrupted", snap.Counters.Corrupted),
		slog.Int("unreadable_dirs", len(snap.DirErrors)),
		slog.Duration("took", snap.Finished.Sub(started)))
	return snap, nil
}
