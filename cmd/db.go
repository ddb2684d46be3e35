package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/config"
)

// dbCmd represents the db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database operations",
	Long:  `Operations for managing the transcriptgen database schema.`,
}

// dbMigrateCmd applies pending schema migrations
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long:  `Apply all pending schema migrations from the migrations directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		migrationsDir, _ := cmd.Flags().GetString("dir")
		if err := config.MigrateDatabase(cfg, migrationsDir); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		fmt.Println("Database schema is up to date.")
		return nil
	},
}

func init() {
	dbMigrateCmd.Flags().String("dir", "migrations", "Path to the migrations directory")

	dbCmd.AddCommand(dbMigrateCmd)
	rootCmd.AddCommand(dbCmd)
}
