package main

import (
	"github.com/spf13/cobra"

	"notes-api/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all data with the demo users and notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, store, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		res, err := seed.Run(cmd.Context(), store, seed.DefaultAccounts, seed.DefaultNotes)
		if err != nil {
			return err
		}

		logger.Info().Int("users", len(res.Users)).Int("notes", len(res.Notes)).Msg("seed complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
