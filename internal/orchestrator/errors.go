package orchestrator

import (
	"errors"
	"fmt"
)

// SetupError aborts the run before any batch is processed. Nothing has been
// written yet, so failing loudly is cheaper than limping through a scrape
// against a broken dependency.
type SetupError struct {
	Step string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup failed while %s: %v", e.Step, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// ScrapingError marks a profile page that could not be fetched or read.
// Recoverable: the author is skipped and the run moves on.
type ScrapingError struct {
	Author string
	URL    string
	Err    error
}

func (e *ScrapingError) Error() string {
	return fmt.Sprintf("scraping %s at %s: %v", e.Author, e.URL, e.Err)
}

func (e *ScrapingError) Unwrap() error { return e.Err }

// AuthorProcessingError marks scraped data that could not be assembled into
// an author record. Recoverable: the author is skipped.
type AuthorProcessingError struct {
	Author string
	URL    string
	Err    error
}

func (e *AuthorProcessingError) Error() string {
	return fmt.Sprintf("processing author %s at %s: %v", e.Author, e.URL, e.Err)
}

func (e *AuthorProcessingError) Unwrap() error { return e.Err }

// WriteAuthorError marks an author document the output target rejected.
// Recoverable: the author is skipped; any of their plays already written
// stay written and are reconciled on a later run.
type WriteAuthorError struct {
	Author string
	Err    error
}

func (e *WriteAuthorError) Error() string {
	return fmt.Sprintf("writing author %s: %v", e.Author, e.Err)
}

func (e *WriteAuthorError) Unwrap() error { return e.Err }

// PlayProcessingError marks one work entry that could not be assembled into
// a play record. Recoverable: only that play is skipped.
type PlayProcessingError struct {
	Title string
	Err   error
}

func (e *PlayProcessingError) Error() string {
	return fmt.Sprintf("processing play %q: %v", e.Title, e.Err)
}

func (e *PlayProcessingError) Unwrap() error { return e.Err }

// WritePlayError marks a play document the output target rejected.
// Recoverable: only that play is skipped.
type WritePlayError struct {
	Title  string
	PlayID string
	Err    error
}

func (e *WritePlayError) Error() string {
	return fmt.Sprintf("writing play %q (%s): %v", e.Title, e.PlayID, e.Err)
}

func (e *WritePlayError) Unwrap() error { return e.Err }

// isRecoverableAuthorError reports whether an error from author processing
// means "skip this author and continue". Anything outside the taxonomy is a
// bug or a broken environment and aborts the run.
func isRecoverableAuthorError(err error) bool {
	var (
		scrapeErr *ScrapingError
		procErr   *AuthorProcessingError
		writeErr  *WriteAuthorError
	)
	return errors.As(err, &scrapeErr) || errors.As(err, &procErr) || errors.As(err, &writeErr)
}
