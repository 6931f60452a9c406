package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"notes-api/config"
	"notes-api/db"
)

var rootCmd = &cobra.Command{
	Use:           "notes-api",
	Short:         "REST API for users and their notes",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, builds the logger and opens a migrated store.
func setup(ctx context.Context) (*config.Config, zerolog.Logger, *db.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	logger := cfg.Logger(os.Stderr)

	store, err := db.Open(cfg.DBDriver, cfg.DSN)
	if err != nil {
		return nil, logger, nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, logger, nil, err
	}
	return cfg, logger, store, nil
}
