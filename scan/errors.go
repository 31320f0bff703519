package scan

import (
	"errors"
	"fmt"
)

// Sentinel errors for package scan.
var (
	// Queue errors
	ErrQueueClosed = errors.New("push to closed queue")

	// Root errors
	ErrRootNotDirectory = errors.New("scan root is not a directory")
	ErrNoInspector      = errors.New("no inspector configured")
)

// DirError records a directory that could not be read during traversal.
type DirError struct {
	// Path is the slash-separated path relative to the scan root.
	Path string
	// Op is the failed operation, usually "readdir".
	Op  string
	Err error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DirError) Unwrap() error {
	return e.Err
}

// WorkerError reports a worker that stopped because of a panic outside the
// inspector call.
type WorkerError struct {
	Worker int
	Value  any
	Stack  []byte
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d terminated: %v", e.Worker, e.Value)
}

func (e *WorkerError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
