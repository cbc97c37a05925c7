package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Summary is the run's closing report.
type Summary struct {
	Stats         Stats
	ReviewTotal   int
	ReviewPath    string
	LogPath       string
	LogSizeBytes  int64
	LogWarnLines  int
	LogErrorLines int
	OutputTarget  string
	FatalError    error
	InterruptNote string
}

// Render writes the human-readable summary once, at completion.
func (s Summary) Render(out io.Writer) {
	line := strings.Repeat("-", 56)

	fmt.Fprintln(out, line)
	fmt.Fprintln(out, "run complete")
	if s.FatalError != nil {
		fmt.Fprintf(out, "  aborted: %v\n", s.FatalError)
	}
	if s.InterruptNote != "" {
		fmt.Fprintf(out, "  interrupted: %s\n", s.InterruptNote)
	}

	fmt.Fprintf(out, "  runtime:          %s\n", s.Stats.Global.Runtime().Round(time.Second))
	fmt.Fprintf(out, "  output target:    %s\n", s.OutputTarget)
	fmt.Fprintf(out, "  batches:          %s of %s completed\n",
		humanize.Comma(int64(s.Stats.Global.BatchesCompleted)),
		humanize.Comma(int64(s.Stats.Global.TotalBatches)))

	fmt.Fprintf(out, "  authors:          %s written, %s skipped, %s flagged (%.1f%% success)\n",
		humanize.Comma(int64(s.Stats.Authors.TotalWritten)),
		humanize.Comma(int64(s.Stats.Authors.TotalSkipped)),
		humanize.Comma(int64(s.Stats.Authors.TotalFlagged)),
		s.Stats.Authors.SuccessRate())
	fmt.Fprintf(out, "  plays:            %s written, %s skipped, %s flagged (%.1f%% success)\n",
		humanize.Comma(int64(s.Stats.Plays.TotalWritten)),
		humanize.Comma(int64(s.Stats.Plays.TotalSkipped)),
		humanize.Comma(int64(s.Stats.Plays.TotalFlagged)),
		s.Stats.Plays.SuccessRate())

	fmt.Fprintf(out, "  errors:           %d (%d network, %d write)\n",
		s.Stats.Errors.Errors, s.Stats.Errors.NetworkErrors, s.Stats.Errors.WriteErrors)
	fmt.Fprintf(out, "  warnings:         %d\n", s.Stats.Errors.Warnings)

	if s.ReviewTotal > 0 {
		fmt.Fprintf(out, "  needs review:     %s entries -> %s\n",
			humanize.Comma(int64(s.ReviewTotal)), s.ReviewPath)
	} else {
		fmt.Fprintln(out, "  needs review:     none")
	}

	if s.LogPath != "" {
		fmt.Fprintf(out, "  log:              %s (%s, %d warn / %d error lines)\n",
			s.LogPath, humanize.Bytes(uint64(s.LogSizeBytes)), s.LogWarnLines, s.LogErrorLines)
	}
	fmt.Fprintln(out, line)
}
