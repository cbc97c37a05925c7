package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/play-archivist/internal/config"
	"github.com/franz/play-archivist/internal/fetch"
	"github.com/franz/play-archivist/internal/index"
	"github.com/franz/play-archivist/internal/util"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the author index from the site's alphabetical listings",
	Long: `Walk the site's A-Z listing pages and every sub-index range page they
link to, collecting each author's listing name and profile slug into the
index JSON file the scrape command consumes.

Requests are rate-limited. A broken letter page is logged and skipped so the
remaining letters still land.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().Duration("rate-limit-delay", config.Defaults.RateLimitDelay, "minimum delay between requests")
	viper.BindPFlag("rate-limit-delay", indexCmd.Flags().Lookup("rate-limit-delay"))
}

func runIndex(cmd *cobra.Command, args []string) error {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := fetch.NewClient(cfg)
	defer fetcher.Close()

	util.InfoLog("Scraping author index from %s", cfg.BaseURL)
	start := time.Now()

	idx, err := index.ScrapeAll(ctx, fetcher)
	if err != nil {
		return err
	}

	if err := idx.Save(cfg.IndexPath); err != nil {
		return err
	}

	util.SuccessLog("Indexed %d authors in %v", idx.Len(), time.Since(start).Round(time.Second))
	util.InfoLog("Index written to %s", cfg.IndexPath)
	util.InfoLog("Next step: archivist scrape --write-to %s", cfg.WriteTo)
	return nil
}
