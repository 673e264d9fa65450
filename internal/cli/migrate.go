package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pelada/internal/db"
)

func newMigrateCmd(load Loader) *cobra.Command {
	var (
		down   int
		status bool
		path   string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the SQL schema to DATABASE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required")
			}
			if path == "" {
				path = cfg.MigrationsPath
			}

			database, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			out := cmd.OutOrStdout()
			switch {
			case status:
			case down > 0:
				if err := db.RollbackMigrations(database, path, down); err != nil {
					return err
				}
				fmt.Fprintf(out, "Rolled back %d migration(s)\n", down)
			default:
				if err := db.RunMigrations(database, path); err != nil {
					return err
				}
				fmt.Fprintln(out, "Migrations applied")
			}

			version, dirty, err := db.MigrationVersion(database, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Schema version: %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}

	cmd.Flags().IntVar(&down, "down", 0, "Roll back this many migrations")
	cmd.Flags().BoolVar(&status, "status", false, "Only print the applied version")
	cmd.Flags().StringVar(&path, "path", "", "Migrations directory (default MIGRATIONS_PATH)")
	return cmd
}
