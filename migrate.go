package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the users and notes tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, store, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		logger.Info().Str("driver", store.Driver()).Msg("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
