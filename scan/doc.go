// Package scan discovers archives under a directory tree and validates them
// with a fixed-size pool of workers.
//
// A run has one producer and N consumers sharing a [Queue]:
//
//	Walker ──Push──▶ Queue ──TryPop──▶ worker 1..N ──Inspect──▶ Aggregator
//	   │                ▲                    │
//	   └──── Close ─────┘                    └──▶ Observer (live events)
//
// The walker closes the queue once its traversal has returned; Close is the
// WalkDone signal. A worker exits only when the queue is closed and empty,
// so no pushed path is ever left behind and no worker waits for work that
// cannot arrive.
//
// # Locks
//
// Two locks exist, the queue lock and the aggregator lock. Each is taken in a
// single small method, never while holding the other, and never around an
// inspection or an observer callback.
//
// # Ordering
//
// Entries are recorded in completion order, which depends on scheduling.
// Counters are deterministic for a fixed tree regardless of worker count; use
// [Snapshot.SortedEntries] when a stable order is needed.
package scan
