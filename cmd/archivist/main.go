package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/play-archivist/internal/config"
	"github.com/franz/play-archivist/internal/util"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "archivist",
		Short: "Playwright catalog scraper and record normalizer",
		Long: `archivist walks the doollee.com playwright catalog in batches, scrapes
each author's profile page, reconciles the name forms the site disagrees on
into one canonical identity, and writes normalized author and play records
to MongoDB, local JSON files or a sqlite staging database. Records the
pipeline cannot trust are queued for human review instead of guessed at.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/archivist.yaml)")
	rootCmd.PersistentFlags().String("base-url", config.Defaults.BaseURL, "catalog site root")
	rootCmd.PersistentFlags().String("write-to", config.Defaults.WriteTo, "output target: db, file or stage")
	rootCmd.PersistentFlags().String("mongo-uri", config.Defaults.MongoURI, "mongodb connection string (db target)")
	rootCmd.PersistentFlags().String("db-name", config.Defaults.DBName, "mongodb database name (db target)")
	rootCmd.PersistentFlags().String("output-dir", config.Defaults.OutputDir, "directory for file output and run artifacts")
	rootCmd.PersistentFlags().String("stage-path", config.Defaults.StagePath, "sqlite file (stage target)")
	rootCmd.PersistentFlags().String("index-path", config.Defaults.IndexPath, "author index JSON file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	for _, key := range []string{
		"base-url", "write-to", "mongo-uri", "db-name",
		"output-dir", "stage-path", "index-path", "verbose", "quiet",
	} {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in common locations
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.SetConfigName("archivist")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match (ARCHIVIST_BASE_URL etc.)
	viper.SetEnvPrefix("ARCHIVIST")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
