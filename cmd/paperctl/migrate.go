package main

import (
	"github.com/spf13/cobra"

	"questionbank/internal/database"
)

func init() {
	RootCmd.AddCommand(&MigrateCommand)
}

var MigrateCommand = cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema",
	Long:  "Create or update the schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		cmd.Println("done")
		return nil
	},
}
