package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/play-archivist/internal/config"
	"github.com/franz/play-archivist/internal/display"
	"github.com/franz/play-archivist/internal/fetch"
	"github.com/franz/play-archivist/internal/orchestrator"
	"github.com/franz/play-archivist/internal/store"
	"github.com/franz/play-archivist/internal/util"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the catalog and write normalized records",
	Long: `Scrape the playwright catalog using the author index built by the
index command.

Authors are processed in batches. For each author the profile page is
fetched, the biography and works list extracted, names reconciled, and the
resulting author and play documents written to the configured output. A bad
page or a rejected write skips that record only; anything skipped or flagged
lands in the review-queue artifact for a human pass.

Interrupt with Ctrl-C for an orderly stop: the record in flight finishes,
outputs are closed and the summary still prints.`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().Int("batch-size", config.Defaults.BatchSize, "authors per batch")
	scrapeCmd.Flags().Int("max-batches", config.Defaults.MaxBatches, "stop after this many batches (0 = all)")
	scrapeCmd.Flags().Duration("page-timeout", config.Defaults.PageTimeout, "per-page fetch timeout")
	scrapeCmd.Flags().Duration("rate-limit-delay", config.Defaults.RateLimitDelay, "minimum delay between index requests")
	scrapeCmd.Flags().String("log-dir", config.Defaults.LogDir, "directory for run logs")
	scrapeCmd.Flags().String("log-file", "", "log file path (default derives from start time)")
	scrapeCmd.Flags().Int("log-tail", config.Defaults.LogTailLines, "log lines shown under the dashboard")

	for _, key := range []string{
		"batch-size", "max-batches", "page-timeout", "rate-limit-delay",
		"log-dir", "log-file", "log-tail",
	} {
		viper.BindPFlag(key, scrapeCmd.Flags().Lookup(key))
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	start := time.Now()
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = filepath.Join(cfg.LogDir, fmt.Sprintf("scrape-%s.log", start.Format("2006-01-02T15-04-05")))
	}
	sink, err := display.NewSink(logPath, cfg.LogTailLines)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer sink.Close()

	// Ctrl-C / SIGTERM request an orderly stop at the next author boundary.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	writer, err := openWriter(ctx, cfg)
	if err != nil {
		return err
	}

	fetcher := fetch.NewClient(cfg)
	disp := display.New(os.Stderr, sink)

	orch := orchestrator.New(cfg, fetcher, writer, sink, disp)
	runErr := orch.Run(ctx)

	printSummary(orch, sink, cfg, runErr)
	return runErr
}

// openWriter selects the output backend. The db target also ensures the
// collections and unique play index exist, so a fresh deployment works
// without a separate init step.
func openWriter(ctx context.Context, cfg *config.Config) (store.Writer, error) {
	switch cfg.WriteTo {
	case config.WriteToDB:
		mongoStore, err := store.OpenMongo(ctx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			return nil, err
		}
		if err := mongoStore.EnsureCollections(ctx); err != nil {
			_ = mongoStore.Close(ctx)
			return nil, err
		}
		return mongoStore, nil
	case config.WriteToStage:
		return store.OpenStage(cfg.StagePath)
	case config.WriteToFile:
		return store.OpenFiles(cfg.OutputDir)
	default:
		return nil, fmt.Errorf("unknown write target %q", cfg.WriteTo)
	}
}

func printSummary(orch *orchestrator.Orchestrator, sink *display.Sink, cfg *config.Config, runErr error) {
	stats := orch.Stats()
	stats.Errors.Warnings, _ = sink.Counts()

	summary := display.Summary{
		Stats:        *stats,
		LogPath:      sink.Path(),
		LogSizeBytes: sink.Size(),
		OutputTarget: cfg.WriteTo,
		FatalError:   runErr,
	}
	summary.LogWarnLines, summary.LogErrorLines = sink.Counts()
	if orch.Interrupted() {
		summary.InterruptNote = "stopped on signal; partial results were kept"
	}
	if queue := orch.ReviewQueue(); queue != nil {
		summary.ReviewTotal = queue.TotalForReview()
		summary.ReviewPath = queue.Path()
	}
	summary.Render(os.Stdout)
}
