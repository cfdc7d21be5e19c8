package main

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"questionbank/internal/config"
	"questionbank/internal/database"
)

var (
	// flags
	databaseURL string

	cfg *config.Config
)

func init() {
	RootCmd.PersistentFlags().StringVar(&databaseURL, "db", "", "database url, overrides DATABASE_URL")
}

var RootCmd = cobra.Command{
	Use:          "paperctl",
	Short:        "Manage the question paper repository",
	Long:         "Manage admin credentials, the admin allow-list and the schema of the question paper repository",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if databaseURL != "" {
			cfg.DatabaseURL = databaseURL
		}
		return nil
	},
}

func openDB() (*gorm.DB, error) {
	return database.Connect(cfg.DatabaseURL)
}
