package scan

// Observer receives live events from a run. Callbacks are invoked from the
// walker and worker goroutines, never while a scan lock is held, so
// implementations must be safe for concurrent use.
type Observer interface {
	// OnDiscovered is called after the walker queued path.
	OnDiscovered(path string)
	// OnOutcome is called once per archive with the counters as they
	// stood right after it was recorded.
	OnOutcome(e Entry, c Counters)
	// OnDirError is called for every directory the walker could not read.
	OnDirError(err *DirError)
}

// Observers fans events out to every element in order.
type Observers []Observer

var _ Observer = Observers(nil)

func (o Observers) OnDiscovered(path string) {
	for _, ob := range o {
		ob.OnDiscovered(path)
	}
}

func (o Observers) OnOutcome(e Entry, c Counters) {
	for _, ob := range o {
		ob.OnOutcome(e, c)
	}
}

func (o Observers) OnDirError(err *DirError) {
	for _, ob := range o {
		ob.OnDirError(err)
	}
}
