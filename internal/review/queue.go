// Package review accumulates the skipped and flagged records of a run and
// keeps a JSON artifact of them current on disk, so a partially-completed
// run still leaves a usable review file.
package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/franz/play-archivist/internal/record"
)

// SkippedAuthor is an author the run could not process.
type SkippedAuthor struct {
	Name       string `json:"name"`
	ProfileURL string `json:"profileUrl"`
	Reason     string `json:"reason"`
}

// SkippedPlay is a single play dropped while its author survived.
type SkippedPlay struct {
	AuthorName string `json:"authorName"`
	ProfileURL string `json:"profileUrl"`
	PlayID     string `json:"playId,omitempty"`
	Title      string `json:"title,omitempty"`
	Reason     string `json:"reason"`
}

// FlaggedAuthor is an author written successfully but needing human review.
type FlaggedAuthor struct {
	AuthorID      string                      `json:"authorId"`
	Name          string                      `json:"name"`
	ProfileURL    string                      `json:"profileUrl"`
	Filename      string                      `json:"filename,omitempty"`
	Reason        string                      `json:"reason"`
	NameConflicts map[string]record.FieldDiff `json:"nameConflicts,omitempty"`
}

// FlaggedPlay is a play written successfully but needing human review.
type FlaggedPlay struct {
	Title      string `json:"title"`
	PlayID     string `json:"playId"`
	AuthorName string `json:"authorName"`
	AuthorID   string `json:"authorId,omitempty"`
	ProfileURL string `json:"profileUrl"`
	Filename   string `json:"filename,omitempty"`
}

type categoryCounts struct {
	Skipped        int `json:"skipped"`
	Flagged        int `json:"flagged"`
	TotalForReview int `json:"totalForReview"`
}

type artifact struct {
	Metadata struct {
		RunID       string         `json:"runId"`
		GeneratedAt string         `json:"generatedAt"`
		Authors     categoryCounts `json:"authors"`
		Plays       categoryCounts `json:"plays"`
	} `json:"metadata"`
	SkippedEntries struct {
		Authors []SkippedAuthor `json:"authors"`
		Plays   []SkippedPlay   `json:"plays"`
	} `json:"skippedEntries"`
	FlaggedEntries struct {
		Authors []FlaggedAuthor `json:"authors"`
		Plays   []FlaggedPlay   `json:"plays"`
	} `json:"flaggedEntries"`
}

// Queue collects review entries and rewrites the artifact in full after
// every addition. The file is small relative to a scrape, and a full
// rewrite means the artifact never holds a torn append.
type Queue struct {
	path  string
	runID string

	skippedAuthors []SkippedAuthor
	skippedPlays   []SkippedPlay
	flaggedAuthors []FlaggedAuthor
	flaggedPlays   []FlaggedPlay
}

// NewQueue creates the review-queue directory and a timestamped artifact
// path for this run.
func NewQueue(outputDir string, start time.Time) (*Queue, error) {
	dir := filepath.Join(outputDir, "review-queue")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating review-queue directory: %w", err)
	}
	q := &Queue{
		path:  filepath.Join(dir, fmt.Sprintf("review-%s.json", start.Format("2006-01-02T15-04-05"))),
		runID: uuid.NewString(),
	}
	return q, nil
}

// Path reports where the artifact is written.
func (q *Queue) Path() string { return q.path }

// AddSkippedAuthor records an author skip and persists the artifact.
func (q *Queue) AddSkippedAuthor(entry SkippedAuthor) error {
	q.skippedAuthors = append(q.skippedAuthors, entry)
	return q.persist()
}

// AddSkippedPlay records a play skip and persists the artifact.
func (q *Queue) AddSkippedPlay(entry SkippedPlay) error {
	q.skippedPlays = append(q.skippedPlays, entry)
	return q.persist()
}

// AddFlaggedAuthor records a needs-review author and persists the artifact.
func (q *Queue) AddFlaggedAuthor(entry FlaggedAuthor) error {
	q.flaggedAuthors = append(q.flaggedAuthors, entry)
	return q.persist()
}

// AddFlaggedPlay records a needs-review play and persists the artifact.
func (q *Queue) AddFlaggedPlay(entry FlaggedPlay) error {
	q.flaggedPlays = append(q.flaggedPlays, entry)
	return q.persist()
}

// Counts reports (skipped, flagged) totals for authors and plays.
func (q *Queue) Counts() (authors, plays categoryCounts) {
	authors = categoryCounts{
		Skipped:        len(q.skippedAuthors),
		Flagged:        len(q.flaggedAuthors),
		TotalForReview: len(q.skippedAuthors) + len(q.flaggedAuthors),
	}
	plays = categoryCounts{
		Skipped:        len(q.skippedPlays),
		Flagged:        len(q.flaggedPlays),
		TotalForReview: len(q.skippedPlays) + len(q.flaggedPlays),
	}
	return authors, plays
}

// TotalForReview is the combined author and play review count.
func (q *Queue) TotalForReview() int {
	authors, plays := q.Counts()
	return authors.TotalForReview + plays.TotalForReview
}

// Finalize persists the artifact one last time; safe to call on an empty
// queue so every run leaves a file.
func (q *Queue) Finalize() error {
	return q.persist()
}

func (q *Queue) persist() error {
	var a artifact
	a.Metadata.RunID = q.runID
	a.Metadata.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	a.Metadata.Authors, a.Metadata.Plays = q.Counts()
	a.SkippedEntries.Authors = q.skippedAuthors
	a.SkippedEntries.Plays = q.skippedPlays
	a.FlaggedEntries.Authors = q.flaggedAuthors
	a.FlaggedEntries.Plays = q.flaggedPlays

	raw, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding review queue: %w", err)
	}
	if err := os.WriteFile(q.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing review queue %s: %w", q.path, err)
	}
	return nil
}
