package report

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/dendrascience/checkzip/scan"
)

// Progress draws a spinner with the running counters. The total is unknown
// while the walker is still running, so the bar has no fixed length.
type Progress struct {
	bar        *progressbar.ProgressBar
	discovered atomic.Int64
}

var _ scan.Observer = (*Progress)(nil)

// NewProgress returns a spinner drawing to w, usually stderr.
func NewProgress(w io.Writer) *Progress {
	return &Progress{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("Checking"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionSetElapsedTime(true),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (p *Progress) OnDiscovered(string) {
	p.discovered.Add(1)
}

func (p *Progress) OnOutcome(_ scan.Entry, c scan.Counters) {
	p.bar.Describe(fmt.Sprintf("found %d  valid %d  corrupted %d  skipped %d",
		p.discovered.Load(), c.Valid, c.Corrupted, c.Skipped))
	p.bar.Add(1)
}

func (p *Progress) OnDirError(*scan.DirError) {}

// Finish clears the spinner.
func (p *Progress) Finish() error {
	return p.bar.Finish()
}
