package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/play-archivist/internal/config"
	"github.com/franz/play-archivist/internal/store"
	"github.com/franz/play-archivist/internal/util"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create the MongoDB collections and indexes",
	Long: `Create the authors and plays collections and the unique play-id index
in the configured MongoDB database. Idempotent; safe to run against a
database that already has them.`,
	RunE: runInitDB,
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}

func runInitDB(cmd *cobra.Command, args []string) error {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoStore, err := store.OpenMongo(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return err
	}
	defer mongoStore.Close(ctx)

	if err := mongoStore.EnsureCollections(ctx); err != nil {
		return err
	}

	util.SuccessLog("Database %s is ready", cfg.DBName)
	return nil
}
