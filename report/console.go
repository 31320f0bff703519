package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/taigrr/colorhash"

	"github.com/dendrascience/checkzip/inspect"
	"github.com/dendrascience/checkzip/scan"
)

// workerPalette holds the colors a worker tag may take.
var workerPalette = []color.Attribute{
	color.FgBlue,
	color.FgMagenta,
	color.FgCyan,
	color.FgHiBlue,
	color.FgHiMagenta,
	color.FgHiCyan,
	color.FgHiGreen,
	color.FgHiYellow,
}

// ConsoleOptions control what Console prints.
type ConsoleOptions struct {
	// Quiet suppresses per-archive lines. Directory errors and the summary
	// are still printed.
	Quiet bool
	// ProblemsOnly suppresses lines for valid archives.
	ProblemsOnly bool
	// ShowWorker prefixes each line with the worker that produced it.
	ShowWorker bool
	// NoColor disables color regardless of the terminal.
	NoColor bool
}

// Console prints live results. It is safe for concurrent use.
type Console struct {
	mu   sync.Mutex
	out  io.Writer
	opts ConsoleOptions
}

var _ scan.Observer = (*Console)(nil)

// NewConsole returns a Console writing to out.
func NewConsole(out io.Writer, opts ConsoleOptions) *Console {
	return &Console{out: out, opts: opts}
}

func (c *Console) paint(attr color.Attribute, s string) string {
	if attr == 0 {
		return s
	}
	p := color.New(attr)
	if c.opts.NoColor {
		p.DisableColor()
	}
	return p.Sprint(s)
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, s)
}

func kindColor(k inspect.Kind) color.Attribute {
	switch k {
	case inspect.Valid:
		return color.FgGreen
	case inspect.Corrupted:
		return color.FgRed
	default:
		return color.FgYellow
	}
}

// workerTag renders "[wN]" in a color picked by hashing the tag, so a
// worker keeps its color across runs.
func (c *Console) workerTag(id int) string {
	tag := fmt.Sprintf("w%d", id)
	h := colorhash.HashString(tag)
	if h < 0 {
		h = -h
	}
	return c.paint(workerPalette[h%len(workerPalette)], "["+tag+"]")
}

// Start announces a run.
func (c *Console) Start(root string, workers int) {
	c.println(c.paint(color.FgYellow, fmt.Sprintf("🔍 Recursively checking all archives in %s with %d worker(s)...", root, workers)))
}

func (c *Console) OnDiscovered(string) {}

func (c *Console) OnOutcome(e scan.Entry, _ scan.Counters) {
	if c.opts.Quiet || (c.opts.ProblemsOnly && e.Outcome.Kind == inspect.Valid) {
		return
	}
	s := c.paint(kindColor(e.Outcome.Kind), Line(e))
	if c.opts.ShowWorker {
		s = c.workerTag(e.Worker) + " " + s
	}
	c.println(s)
}

func (c *Console) OnDirError(err *scan.DirError) {
	c.println(c.paint(color.FgYellow, DirLine(err)))
}

// Summary prints the summary block of s.
func (c *Console) Summary(s scan.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out)
	for _, l := range summaryLines(s) {
		fmt.Fprintln(c.out, c.paint(l.attr, l.text))
	}
}

// LogSaved reports where the log file was written, or why it was not.
func (c *Console) LogSaved(path string, err error) {
	if err != nil {
		c.println(c.paint(color.FgRed, fmt.Sprintf("❌ Failed to save log file: %v", err)))
		return
	}
	c.println(c.paint(color.FgGreen, "📝 Log file saved successfully at: "+path))
}

// Deleted reports the removal of one corrupted archive.
func (c *Console) Deleted(path string, err error) {
	if err != nil {
		c.println(c.paint(color.FgRed, fmt.Sprintf("❌ Failed to delete file %s: %v", path, err)))
		return
	}
	c.println(c.paint(color.FgGreen, "🗑️ Deleted corrupted file: "+path))
}

// Prompt writes a question without a trailing newline.
func (c *Console) Prompt(question string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, c.paint(color.FgYellow, question))
}
