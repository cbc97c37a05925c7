package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/play-archivist/internal/config"
	"github.com/franz/play-archivist/internal/fetch"
	"github.com/franz/play-archivist/internal/index"
	"github.com/franz/play-archivist/internal/store"
	"github.com/franz/play-archivist/internal/util"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the environment and configuration",
	Long: `Run diagnostic checks to ensure archivist can operate correctly.

This command checks:
- Source site reachability
- Author index file presence and size
- Output target accessibility (MongoDB, output directory or stage database)
- Disk space availability for the output directory

Use this command to troubleshoot issues before starting a scrape.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	util.InfoLog("=== Archivist Doctor - System Diagnostics ===")
	util.InfoLog("")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	results := []checkResult{
		checkSite(ctx, cfg),
		checkIndexFile(cfg.IndexPath),
		checkOutputTarget(ctx, cfg),
		checkDiskSpace(cfg.OutputDir),
	}

	util.InfoLog("")
	util.InfoLog("=== Diagnostic Results ===")
	util.InfoLog("")

	hasErrors := false
	hasWarnings := false

	for _, r := range results {
		symbol := "✓"
		if r.error {
			symbol = "✗"
			hasErrors = true
		} else if r.warning {
			symbol = "⚠"
			hasWarnings = true
		}

		line := fmt.Sprintf("[%s] %s", symbol, r.name)
		if r.message != "" {
			line += fmt.Sprintf(": %s", r.message)
		}

		if r.error {
			util.ErrorLog("%s", line)
		} else if r.warning {
			util.WarnLog("%s", line)
		} else {
			util.SuccessLog("%s", line)
		}
	}

	util.InfoLog("")
	if hasErrors {
		util.ErrorLog("Some critical checks failed. Please resolve errors before scraping.")
		return fmt.Errorf("system diagnostics failed")
	} else if hasWarnings {
		util.WarnLog("Some checks produced warnings. Review them before proceeding.")
	} else {
		util.SuccessLog("All checks passed! System is ready for a scrape.")
	}

	return nil
}

// checkSite probes the catalog root.
func checkSite(ctx context.Context, cfg *config.Config) checkResult {
	client := fetch.NewClient(cfg)
	defer client.Close()

	start := time.Now()
	if err := client.Ready(ctx); err != nil {
		return checkResult{
			name:    "Source site",
			error:   true,
			message: fmt.Sprintf("%s unreachable: %v", cfg.BaseURL, err),
		}
	}
	return checkResult{
		name:    "Source site",
		message: fmt.Sprintf("%s (%v)", cfg.BaseURL, time.Since(start).Round(time.Millisecond)),
	}
}

// checkIndexFile verifies the author index exists and parses.
func checkIndexFile(path string) checkResult {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return checkResult{
				name:    "Author index",
				warning: true,
				message: fmt.Sprintf("%s not found (run: archivist index)", path),
			}
		}
		return checkResult{
			name:    "Author index",
			error:   true,
			message: fmt.Sprintf("cannot access %s: %v", path, err),
		}
	}

	idx, err := index.Load(path)
	if err != nil {
		return checkResult{
			name:    "Author index",
			error:   true,
			message: fmt.Sprintf("cannot parse %s: %v", path, err),
		}
	}
	if idx.Len() == 0 {
		return checkResult{
			name:    "Author index",
			warning: true,
			message: fmt.Sprintf("%s holds no authors", path),
		}
	}

	return checkResult{
		name:    "Author index",
		message: fmt.Sprintf("%s (%s, %d authors)", path, humanize.Bytes(uint64(info.Size())), idx.Len()),
	}
}

// checkOutputTarget opens whichever backend the configuration selects.
func checkOutputTarget(ctx context.Context, cfg *config.Config) checkResult {
	name := fmt.Sprintf("Output target (%s)", cfg.WriteTo)

	writer, err := openWriter(ctx, cfg)
	if err != nil {
		return checkResult{
			name:    name,
			error:   true,
			message: err.Error(),
		}
	}
	defer writer.Close(ctx)

	if err := writer.Ready(ctx); err != nil {
		return checkResult{
			name:    name,
			error:   true,
			message: err.Error(),
		}
	}

	message := "ready"
	switch cfg.WriteTo {
	case config.WriteToDB:
		message = fmt.Sprintf("%s/%s", cfg.MongoURI, cfg.DBName)
	case config.WriteToFile:
		message = cfg.OutputDir
	case config.WriteToStage:
		if stage, ok := writer.(*store.StageStore); ok {
			authors, _ := stage.Count(ctx, store.CollectionAuthors)
			plays, _ := stage.Count(ctx, store.CollectionPlays)
			message = fmt.Sprintf("%s (%d authors, %d plays staged)", cfg.StagePath, authors, plays)
		}
	}
	return checkResult{name: name, message: message}
}

// checkDiskSpace verifies available disk space under the output directory.
func checkDiskSpace(path string) checkResult {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return checkResult{
			name:    "Disk space",
			error:   true,
			message: fmt.Sprintf("cannot create %s: %v", path, err),
		}
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(filepath.Clean(path), &stat); err != nil {
		return checkResult{
			name:    "Disk space",
			warning: true,
			message: fmt.Sprintf("cannot determine disk space: %v", err),
		}
	}

	availBytes := stat.Bavail * uint64(stat.Bsize)
	availGB := float64(availBytes) / (1024 * 1024 * 1024)

	// A full catalog of JSON documents stays under a gigabyte
	if availGB < 1 {
		return checkResult{
			name:    "Disk space",
			warning: true,
			message: fmt.Sprintf("%.1f GB available (low space!)", availGB),
		}
	}

	return checkResult{
		name:    "Disk space",
		message: fmt.Sprintf("%.1f GB available", availGB),
	}
}
