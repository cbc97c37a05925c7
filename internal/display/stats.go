package display

import "time"

// GlobalStats tracks whole-run progress; its counters never reset.
type GlobalStats struct {
	StartTime        time.Time
	EndTime          time.Time
	TotalBatches     int
	TotalAuthors     int
	BatchesCompleted int
}

// Runtime reports elapsed time, using EndTime once the run has finished.
func (g GlobalStats) Runtime() time.Duration {
	if g.StartTime.IsZero() {
		return 0
	}
	end := g.EndTime
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(g.StartTime)
}

// CurrentStats locates the run inside the batch/author/play nesting.
type CurrentStats struct {
	BatchIndex      int
	AuthorIndex     int
	PlayIndex       int
	AuthorURL       string
	FirstAuthorName string
	LastAuthorName  string
	AuthorsInBatch  int
	PlaysForAuthor  int
}

// CategoryStats counts written/skipped/flagged for one record kind, at both
// batch and cumulative scope.
type CategoryStats struct {
	BatchWritten int
	BatchSkipped int
	BatchFlagged int
	TotalWritten int
	TotalSkipped int
	TotalFlagged int
}

// ResetBatch clears the batch-scoped counters at a batch boundary; the
// cumulative counters are never reset.
func (c *CategoryStats) ResetBatch() {
	c.BatchWritten = 0
	c.BatchSkipped = 0
	c.BatchFlagged = 0
}

// AddWritten counts a successful write.
func (c *CategoryStats) AddWritten() {
	c.BatchWritten++
	c.TotalWritten++
}

// AddSkipped counts a skip.
func (c *CategoryStats) AddSkipped() {
	c.BatchSkipped++
	c.TotalSkipped++
}

// AddFlagged counts a needs-review flag.
func (c *CategoryStats) AddFlagged() {
	c.BatchFlagged++
	c.TotalFlagged++
}

// SuccessRate is written / attempted, in percent.
func (c CategoryStats) SuccessRate() float64 {
	attempted := c.TotalWritten + c.TotalSkipped
	if attempted == 0 {
		return 0
	}
	return float64(c.TotalWritten) / float64(attempted) * 100
}

// ErrorStats tallies problems observed during the run. Network errors are
// tracked apart from rejected writes because they point at the deployment,
// not the data.
type ErrorStats struct {
	Warnings      int
	Errors        int
	NetworkErrors int
	WriteErrors   int
}

// Stats is the full set the orchestrator maintains and the display renders.
type Stats struct {
	Global  GlobalStats
	Current CurrentStats
	Authors CategoryStats
	Plays   CategoryStats
	Errors  ErrorStats
}
