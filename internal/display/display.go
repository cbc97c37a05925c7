// Package display renders run telemetry: a throttled terminal dashboard fed
// by the shared log sink, and a final human-readable summary.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// renderInterval throttles dashboard redraws; plays are processed far too
// fast to redraw per unit.
const renderInterval = 250 * time.Millisecond

// Display renders the live dashboard. On a non-terminal it stays silent and
// the sink's log file is the only output.
type Display struct {
	mu         sync.Mutex
	out        io.Writer
	sink       *Sink
	isTerminal bool
	lastRender time.Time
	lastLines  int
	ready      bool
}

// New wires a dashboard to the sink. Pass os.Stderr as out in production.
func New(out io.Writer, sink *Sink) *Display {
	d := &Display{out: out, sink: sink}
	if f, ok := out.(*os.File); ok {
		d.isTerminal = term.IsTerminal(int(f.Fd()))
	}
	d.ready = true
	return d
}

// Ready reports whether the display can be used; checked during setup.
func (d *Display) Ready() bool { return d != nil && d.ready }

// Update redraws the dashboard if the throttle interval has passed. force
// bypasses the throttle for batch boundaries and the final frame.
func (d *Display) Update(stats *Stats, force bool) {
	if !d.isTerminal {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	if !force && now.Sub(d.lastRender) < renderInterval {
		return
	}
	d.lastRender = now
	d.render(stats)
}

func (d *Display) render(stats *Stats) {
	var b strings.Builder

	// move cursor up over the previous frame and clear it
	if d.lastLines > 0 {
		fmt.Fprintf(&b, "\033[%dA\033[J", d.lastLines)
	}

	lines := []string{
		fmt.Sprintf("batch   %d/%d  (%s … %s)",
			stats.Current.BatchIndex, stats.Global.TotalBatches,
			stats.Current.FirstAuthorName, stats.Current.LastAuthorName),
		fmt.Sprintf("author  %d/%d  play %d/%d  %s",
			stats.Current.AuthorIndex, stats.Current.AuthorsInBatch,
			stats.Current.PlayIndex, stats.Current.PlaysForAuthor,
			stats.Current.AuthorURL),
		fmt.Sprintf("authors written %d  skipped %d  flagged %d  (batch %d/%d/%d)",
			stats.Authors.TotalWritten, stats.Authors.TotalSkipped, stats.Authors.TotalFlagged,
			stats.Authors.BatchWritten, stats.Authors.BatchSkipped, stats.Authors.BatchFlagged),
		fmt.Sprintf("plays   written %d  skipped %d  flagged %d  (batch %d/%d/%d)",
			stats.Plays.TotalWritten, stats.Plays.TotalSkipped, stats.Plays.TotalFlagged,
			stats.Plays.BatchWritten, stats.Plays.BatchSkipped, stats.Plays.BatchFlagged),
		fmt.Sprintf("errors  %d  warnings %d  runtime %s",
			stats.Errors.Errors, stats.Errors.Warnings,
			stats.Global.Runtime().Round(time.Second)),
	}
	if d.sink != nil {
		for _, tailLine := range d.sink.Tail() {
			lines = append(lines, "  | "+tailLine)
		}
	}

	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprint(d.out, b.String())
	d.lastLines = len(lines)
}

// Close draws a final frame and releases the terminal; no cursor state is
// left behind.
func (d *Display) Close(stats *Stats) {
	if !d.isTerminal {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.render(stats)
	d.ready = false
}
