package main

import (
	"github.com/spf13/cobra"

	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/database"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded database migrations",
	Long:  "Apply every pending migration, or move --steps migrations up (positive) or down (negative).",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(config.Load())
		if err != nil {
			return err
		}
		defer database.Close(db)
		return database.Migrate(db, migrateSteps)
	},
}

func init() {
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 0, "number of migrations to apply; negative rolls back")
}
