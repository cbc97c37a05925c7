// Package orchestrator drives the batch scrape: it walks the author index in
// batches, scrapes each profile, assembles author and play records and hands
// them to the configured output, isolating failures so one bad page never
// costs the run.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/franz/play-archivist/internal/config"
	"github.com/franz/play-archivist/internal/display"
	"github.com/franz/play-archivist/internal/fetch"
	"github.com/franz/play-archivist/internal/index"
	"github.com/franz/play-archivist/internal/page"
	"github.com/franz/play-archivist/internal/record"
	"github.com/franz/play-archivist/internal/review"
	"github.com/franz/play-archivist/internal/store"
	"github.com/franz/play-archivist/internal/util"
)

// Fetcher is the page source. Satisfied by *fetch.Client.
type Fetcher interface {
	GetDocument(ctx context.Context, path string) (*goquery.Document, error)
	URL(path string) string
	Ready(ctx context.Context) error
	Close() error
}

// Orchestrator owns the run's collaborators and statistics. One instance
// serves one run; it is not safe for concurrent use and does not need to be.
type Orchestrator struct {
	cfg     *config.Config
	fetcher Fetcher
	writer  store.Writer
	sink    *display.Sink
	display *display.Display
	policy  record.ReviewPolicy

	stats   display.Stats
	batches []index.Batch
	queue   *review.Queue

	interrupted bool
	tornDown    bool
}

// New assembles an orchestrator around already-opened collaborators. The
// caller keeps ownership of the sink; the orchestrator closes the fetcher and
// writer during teardown.
func New(cfg *config.Config, fetcher Fetcher, writer store.Writer, sink *display.Sink, disp *display.Display) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		fetcher: fetcher,
		writer:  writer,
		sink:    sink,
		display: disp,
		policy:  record.DefaultReviewPolicy(),
	}
}

// Stats exposes the run counters for the final summary.
func (o *Orchestrator) Stats() *display.Stats { return &o.stats }

// ReviewQueue exposes the review artifact; nil until setup has run.
func (o *Orchestrator) ReviewQueue() *review.Queue { return o.queue }

// Interrupted reports whether the run stopped early on context cancellation.
func (o *Orchestrator) Interrupted() bool { return o.interrupted }

// Run executes the whole pipeline: setup, every batch, teardown. Teardown
// runs exactly once on every exit path, including a cancelled context and a
// fatal error. Cancellation is honored at author boundaries so the record in
// flight is either fully handled or not started.
func (o *Orchestrator) Run(ctx context.Context) error {
	defer o.teardown()

	if err := o.setup(ctx); err != nil {
		return err
	}

	for batchIdx, batch := range o.batches {
		if ctx.Err() != nil {
			o.interrupted = true
			break
		}
		o.beginBatch(batchIdx, batch)

		for authorIdx, entry := range batch {
			if ctx.Err() != nil {
				o.interrupted = true
				break
			}
			o.beginAuthor(authorIdx, entry)

			if err := o.processAuthor(ctx, entry); err != nil {
				if !isRecoverableAuthorError(err) {
					o.sink.Errorf("fatal: %v", err)
					return err
				}
				o.skipAuthor(entry, err)
			}
		}
		if o.interrupted {
			break
		}
		o.endBatch()
	}

	if o.interrupted {
		o.sink.Warnf("run interrupted after %d of %d batches", o.stats.Global.BatchesCompleted, len(o.batches))
	}
	return nil
}

// setup loads the author index, partitions it into batches and verifies every
// dependency before the first page is fetched. A scrape that would die on its
// first write should die here instead.
func (o *Orchestrator) setup(ctx context.Context) error {
	idx, err := index.Load(o.cfg.IndexPath)
	if err != nil {
		return &SetupError{Step: "loading the author index", Err: err}
	}
	entries := idx.Entries()
	if len(entries) == 0 {
		return &SetupError{Step: "loading the author index", Err: fmt.Errorf("index %s holds no authors", o.cfg.IndexPath)}
	}
	o.batches = index.Partition(entries, o.cfg.BatchSize, o.cfg.MaxBatches)

	o.stats.Global.StartTime = time.Now()
	o.stats.Global.TotalBatches = len(o.batches)
	for _, batch := range o.batches {
		o.stats.Global.TotalAuthors += len(batch)
	}

	if err := o.writer.Ready(ctx); err != nil {
		return &SetupError{Step: "checking the output target", Err: err}
	}
	if err := o.fetcher.Ready(ctx); err != nil {
		return &SetupError{Step: "probing the source site", Err: err}
	}
	if o.display != nil && !o.display.Ready() {
		return &SetupError{Step: "initializing the display", Err: fmt.Errorf("display is not ready")}
	}

	queue, err := review.NewQueue(o.cfg.OutputDir, o.stats.Global.StartTime)
	if err != nil {
		return &SetupError{Step: "creating the review queue", Err: err}
	}
	o.queue = queue

	o.sink.Infof("run started: %d authors in %d batches, writing to %s",
		o.stats.Global.TotalAuthors, len(o.batches), o.cfg.WriteTo)
	return nil
}

func (o *Orchestrator) beginBatch(i int, batch index.Batch) {
	o.stats.Current.BatchIndex = i + 1
	o.stats.Current.AuthorIndex = 0
	o.stats.Current.AuthorsInBatch = len(batch)
	o.stats.Current.FirstAuthorName = batch[0].Name
	o.stats.Current.LastAuthorName = batch[len(batch)-1].Name
	o.stats.Authors.ResetBatch()
	o.stats.Plays.ResetBatch()

	o.sink.Infof("batch %d/%d: %s through %s (%d authors)",
		i+1, o.stats.Global.TotalBatches, batch[0].Name, batch[len(batch)-1].Name, len(batch))
	if o.display != nil {
		o.display.Update(&o.stats, true)
	}
}

func (o *Orchestrator) endBatch() {
	o.stats.Global.BatchesCompleted++
	if o.display != nil {
		o.display.Update(&o.stats, true)
	}
}

func (o *Orchestrator) beginAuthor(i int, entry index.Entry) {
	o.stats.Current.AuthorIndex = i + 1
	o.stats.Current.PlayIndex = 0
	o.stats.Current.PlaysForAuthor = 0
	o.stats.Current.AuthorURL = o.fetcher.URL(fetch.ProfilePath(entry.Slug))
	o.sink.SetCurrentURL(o.stats.Current.AuthorURL)
	if o.display != nil {
		o.display.Update(&o.stats, false)
	}
}

// processAuthor scrapes one profile and writes the author and every one of
// their plays. Errors come back typed: the caller decides skip versus abort.
// Play failures never propagate; they are absorbed here so the author record
// still lands.
func (o *Orchestrator) processAuthor(ctx context.Context, entry index.Entry) error {
	path := fetch.ProfilePath(entry.Slug)
	url := o.fetcher.URL(path)
	scrapedAt := time.Now()

	doc, err := o.fetcher.GetDocument(ctx, path)
	if err != nil {
		o.stats.Errors.NetworkErrors++
		return &ScrapingError{Author: entry.Name, URL: url, Err: err}
	}
	extractor, err := page.NewExtractor(doc)
	if err != nil {
		return &ScrapingError{Author: entry.Name, URL: url, Err: err}
	}

	bio := extractor.Biography()
	works := extractor.Works()

	author, err := record.NewAuthor(record.AuthorInput{
		ListingName:   entry.Name,
		HeadingName:   bio.HeadingName,
		AltName:       bio.AltName,
		YearBorn:      bio.Born,
		YearDied:      bio.Died,
		Nationality:   bio.Nationality,
		Email:         bio.Email,
		Website:       bio.Website,
		LiteraryAgent: bio.LiteraryAgent,
		Biography:     bio.Narrative,
		Research:      bio.Research,
		Address:       bio.Address,
		Telephone:     bio.Telephone,
		ScrapedAt:     scrapedAt,
		SourceURL:     url,
	}, o.policy)
	if err != nil {
		return &AuthorProcessingError{Author: entry.Name, URL: url, Err: err}
	}

	o.stats.Current.PlaysForAuthor = len(works)

	playIDs, adaptationIDs, sourceIDs := o.processPlays(ctx, author, works, url, scrapedAt)
	for _, id := range playIDs {
		author.AddPlay(id)
	}
	for _, id := range adaptationIDs {
		author.AddAdaptation(id)
	}
	for _, id := range sourceIDs {
		author.AddSourcePlayID(id)
	}

	return o.writeAuthor(ctx, author, url)
}

// processPlays assembles and writes each work, returning the reference
// accumulators for the owning author record. A failed play is recorded and
// dropped; the slices always reflect every play that was assembled, so the
// author document references plays even when a later write of them failed
// and will be retried on the next run.
func (o *Orchestrator) processPlays(ctx context.Context, author *record.Author, works []page.Work, url string, scrapedAt time.Time) (playIDs, adaptationIDs []primitive.ObjectID, sourceIDs []string) {
	for i, work := range works {
		o.stats.Current.PlayIndex = i + 1
		if o.display != nil {
			o.display.Update(&o.stats, false)
		}

		// On adaptation pages the notes attribute the original playwright;
		// the page's owner is the adapter.
		playAuthor := author.Name
		if work.OriginalAuthor != "" {
			playAuthor = work.OriginalAuthor
		}

		play, err := record.NewPlay(record.PlayInput{
			PlayID:         work.PlayID,
			Title:          work.Title,
			AltTitle:       work.AltTitle,
			Author:         playAuthor,
			AuthorID:       author.ID,
			AdaptingAuthor: work.AdaptingAuthor,
			Genres:         work.Genres,
			Parts:          work.Parts,
			Production:     work.Production,
			Publication:    work.Publication,
			Synopsis:       work.Synopsis,
			Notes:          work.Notes,
			Organizations:  work.Organizations,
			Music:          work.Music,
			Reference:      work.Reference,
			PublishingText: work.PublishingText,
			ProductionText: work.ProductionText,
			ScrapedAt:      scrapedAt,
			SourceURL:      url,
		})
		if err != nil {
			o.skipPlay(author, work, url, &PlayProcessingError{Title: work.Title, Err: err})
			continue
		}

		if play.IsAdaptation {
			adaptationIDs = append(adaptationIDs, play.ID)
		} else {
			playIDs = append(playIDs, play.ID)
		}
		sourceIDs = append(sourceIDs, play.PlayID)

		if err := o.writePlay(ctx, play); err != nil {
			o.skipPlay(author, work, url, err)
			continue
		}

		if play.NeedsReview {
			o.stats.Plays.AddFlagged()
			o.addFlaggedPlay(play, author, url)
		} else {
			o.stats.Plays.AddWritten()
		}
	}
	return playIDs, adaptationIDs, sourceIDs
}

func (o *Orchestrator) writePlay(ctx context.Context, play *record.Play) error {
	if err := o.writer.WritePlay(ctx, play.PlayID, play.Document()); err != nil {
		if store.IsNetworkError(err) {
			o.stats.Errors.NetworkErrors++
		} else {
			o.stats.Errors.WriteErrors++
		}
		wrapped := store.WrapWriteError(err, "play", store.WriteContext{
			ID:        play.PlayID,
			Name:      play.Title,
			SourceURL: play.SourceURL,
			ScrapedAt: play.ScrapedAt,
		})
		return &WritePlayError{Title: play.Title, PlayID: play.PlayID, Err: wrapped}
	}
	return nil
}

func (o *Orchestrator) writeAuthor(ctx context.Context, author *record.Author, url string) error {
	if err := o.writer.WriteAuthor(ctx, author.ID, author.Document()); err != nil {
		if store.IsNetworkError(err) {
			o.stats.Errors.NetworkErrors++
		} else {
			o.stats.Errors.WriteErrors++
		}
		wrapped := store.WrapWriteError(err, "author", store.WriteContext{
			ID:        author.ID.Hex(),
			Name:      author.DisplayName,
			SourceURL: url,
			ScrapedAt: author.ScrapedAt,
		})
		return &WriteAuthorError{Author: author.DisplayName, Err: wrapped}
	}

	if author.NeedsReview {
		o.stats.Authors.AddFlagged()
		flagged := review.FlaggedAuthor{
			AuthorID:      author.ID.Hex(),
			Name:          author.DisplayName,
			ProfileURL:    url,
			Reason:        author.NeedsReviewReason,
			NameConflicts: author.NeedsReviewData,
		}
		if o.cfg.WriteTo == config.WriteToFile {
			flagged.Filename = fmt.Sprintf("%s-%s.json", util.Slugify(author.Name, 32), author.ID.Hex())
		}
		if err := o.queue.AddFlaggedAuthor(flagged); err != nil {
			o.sink.Errorf("review queue write failed: %v", err)
		}
		o.sink.Warnf("author %s flagged for review: %s", author.DisplayName, author.NeedsReviewReason)
	} else {
		o.stats.Authors.AddWritten()
	}

	o.sink.Successf("author %s written (%d plays, %d adaptations)",
		author.DisplayName, len(author.PlayIDs), len(author.AdaptationIDs))
	return nil
}

// skipAuthor is the recoverable-error handler: log, count, queue, continue.
func (o *Orchestrator) skipAuthor(entry index.Entry, err error) {
	o.stats.Errors.Errors++
	o.stats.Authors.AddSkipped()
	o.sink.Errorf("skipping author %s: %v", entry.Name, err)

	if o.queue == nil {
		return
	}
	if qerr := o.queue.AddSkippedAuthor(review.SkippedAuthor{
		Name:       entry.Name,
		ProfileURL: o.fetcher.URL(fetch.ProfilePath(entry.Slug)),
		Reason:     err.Error(),
	}); qerr != nil {
		o.sink.Errorf("review queue write failed: %v", qerr)
	}
}

func (o *Orchestrator) skipPlay(author *record.Author, work page.Work, url string, err error) {
	o.stats.Errors.Errors++
	o.stats.Plays.AddSkipped()
	o.sink.Errorf("skipping play %q by %s: %v", work.Title, author.DisplayName, err)

	if qerr := o.queue.AddSkippedPlay(review.SkippedPlay{
		AuthorName: author.DisplayName,
		ProfileURL: url,
		PlayID:     work.PlayID,
		Title:      work.Title,
		Reason:     err.Error(),
	}); qerr != nil {
		o.sink.Errorf("review queue write failed: %v", qerr)
	}
}

func (o *Orchestrator) addFlaggedPlay(play *record.Play, author *record.Author, url string) {
	flagged := review.FlaggedPlay{
		Title:      play.Title,
		PlayID:     play.PlayID,
		AuthorName: author.DisplayName,
		AuthorID:   author.ID.Hex(),
		ProfileURL: url,
	}
	if o.cfg.WriteTo == config.WriteToFile {
		flagged.Filename = store.PlayFilename(play.PlayID, play.Title)
	}
	if err := o.queue.AddFlaggedPlay(flagged); err != nil {
		o.sink.Errorf("review queue write failed: %v", err)
	}
}

// teardown releases every collaborator exactly once, on every exit path.
// Partial results survive: whatever was written stays written and the review
// artifact is finalized so the run's leftovers are inspectable.
func (o *Orchestrator) teardown() {
	if o.tornDown {
		return
	}
	o.tornDown = true

	o.stats.Global.EndTime = time.Now()
	if o.display != nil {
		o.display.Close(&o.stats)
	}
	if o.queue != nil {
		if err := o.queue.Finalize(); err != nil {
			o.sink.Errorf("finalizing review queue: %v", err)
		}
	}
	if o.fetcher != nil {
		if err := o.fetcher.Close(); err != nil {
			o.sink.Errorf("closing fetch client: %v", err)
		}
	}
	if o.writer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := o.writer.Close(ctx); err != nil {
			o.sink.Errorf("closing output target: %v", err)
		}
	}
}
