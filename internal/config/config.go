package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Output targets for scraped records.
const (
	WriteToDB    = "db"    // MongoDB document collections
	WriteToFile  = "file"  // JSON files under the output directory
	WriteToStage = "stage" // local sqlite staging database
)

// Config carries every tunable the pipeline needs. It is built once in the
// command layer and handed to collaborators explicitly; nothing reads viper
// after startup.
type Config struct {
	MongoURI string
	DBName   string

	BaseURL string
	WriteTo string

	BatchSize  int
	MaxBatches int // 0 = unlimited

	PageTimeout    time.Duration
	RateLimitDelay time.Duration

	OutputDir    string
	LogDir       string
	LogFile      string // derived from the run start time when empty
	LogTailLines int

	IndexPath string // author index JSON consumed by the orchestrator
	StagePath string // sqlite file used by the stage target
}

// Defaults mirrors the environment-variable fallbacks.
var Defaults = Config{
	MongoURI:       "mongodb://localhost:27017",
	DBName:         "playwright-archive",
	BaseURL:        "https://www.doollee.com",
	WriteTo:        WriteToDB,
	BatchSize:      100,
	MaxBatches:     0,
	PageTimeout:    60 * time.Second,
	RateLimitDelay: 3 * time.Second,
	OutputDir:      "output",
	LogDir:         "output",
	LogTailLines:   1,
	IndexPath:      "input/authors/index.json",
	StagePath:      "archivist-stage.db",
}

// Load materializes a Config from viper (flags, env, optional config file).
// Unset keys fall back to Defaults.
func Load() (*Config, error) {
	cfg := &Config{
		MongoURI:       stringOr("mongo-uri", Defaults.MongoURI),
		DBName:         stringOr("db-name", Defaults.DBName),
		BaseURL:        stringOr("base-url", Defaults.BaseURL),
		WriteTo:        stringOr("write-to", Defaults.WriteTo),
		BatchSize:      intOr("batch-size", Defaults.BatchSize),
		MaxBatches:     intOr("max-batches", Defaults.MaxBatches),
		PageTimeout:    durationOr("page-timeout", Defaults.PageTimeout),
		RateLimitDelay: durationOr("rate-limit-delay", Defaults.RateLimitDelay),
		OutputDir:      stringOr("output-dir", Defaults.OutputDir),
		LogDir:         stringOr("log-dir", Defaults.LogDir),
		LogFile:        viper.GetString("log-file"),
		LogTailLines:   intOr("log-tail", Defaults.LogTailLines),
		IndexPath:      stringOr("index-path", Defaults.IndexPath),
		StagePath:      stringOr("stage-path", Defaults.StagePath),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the orchestrator cannot run with.
func (c *Config) Validate() error {
	switch c.WriteTo {
	case WriteToDB, WriteToFile, WriteToStage:
	default:
		return fmt.Errorf("invalid write target %q (expected db, file or stage)", c.WriteTo)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.MaxBatches < 0 {
		return fmt.Errorf("max batches must be >= 0, got %d", c.MaxBatches)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.WriteTo == WriteToDB && c.MongoURI == "" {
		return fmt.Errorf("mongo URI is required for the db write target")
	}
	return nil
}

func stringOr(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if viper.IsSet(key) {
		if d := viper.GetDuration(key); d > 0 {
			return d
		}
	}
	return fallback
}
