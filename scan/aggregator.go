package scan

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dendrascience/checkzip/inspect"
)

// Counters are the running totals of a run.
type Counters struct {
	Total     int
	Valid     int
	Corrupted int
	// Skipped is Protected + Unsupported.
	Skipped     int
	Protected   int
	Unsupported int
}

// Add returns c with one more outcome of kind k.
func (c Counters) Add(k inspect.Kind) Counters {
	c.Total++
	switch k {
	case inspect.Valid:
		c.Valid++
	case inspect.Corrupted:
		c.Corrupted++
	case inspect.PasswordProtected:
		c.Skipped++
		c.Protected++
	case inspect.Unsupported:
		c.Skipped++
		c.Unsupported++
	}
	return c
}

// Entry is one log line of a run.
type Entry struct {
	Path     string
	RelPath  string
	Outcome  inspect.Outcome
	Time     time.Time
	Worker   int
	Duration time.Duration
}

// Aggregator collects outcomes from concurrent workers.
type Aggregator struct {
	mu        sync.Mutex
	counters  Counters
	entries   []Entry
	dirErrors []*DirError
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record counts e and appends it to the log. It returns the counters as
// they stand right after e.
func (a *Aggregator) Record(e Entry) Counters {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counters = a.counters.Add(e.Outcome.Kind)
	a.entries = append(a.entries, e)
	return a.counters
}

// RecordDirError keeps a traversal error for the final report.
func (a *Aggregator) RecordDirError(err *DirError) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dirErrors = append(a.dirErrors, err)
}

// Counters returns the current totals.
func (a *Aggregator) Counters() Counters {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counters
}

// Snapshot copies the collected state.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		Counters:  a.counters,
		Entries:   slices.Clone(a.entries),
		DirErrors: slices.Clone(a.dirErrors),
	}
}

// Snapshot is the read-only result of a run.
type Snapshot struct {
	Root    string
	RunID   string
	Workers int

	Started  time.Time
	Finished time.Time

	Counters Counters
	// Discovered is the number of paths the walker queued.
	Discovered int
	// Entries are in completion order.
	Entries      []Entry
	DirErrors    []*DirError
	WorkerErrors []*WorkerError
	// Interrupted is set when the run was cancelled before the queue
	// drained.
	Interrupted bool
}

// Pending is the number of discovered paths without an outcome. It is zero
// for every run that was neither cancelled nor lost all its workers.
func (s Snapshot) Pending() int {
	return s.Discovered - s.Counters.Total
}

// SortedEntries returns the entries ordered by relative path.
func (s Snapshot) SortedEntries() []Entry {
	out := slices.Clone(s.Entries)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return strings.Compare(a.RelPath, b.RelPath)
	})
	return out
}

// Corrupted returns the OS paths of every corrupted archive, sorted.
func (s Snapshot) Corrupted() []string {
	var out []string
	for _, e := range s.Entries {
		if e.Outcome.Kind == inspect.Corrupted {
			out = append(out, e.Path)
		}
	}
	slices.Sort(out)
	return out
}

// Rel returns path relative to root, or path itself when that fails.
func Rel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
