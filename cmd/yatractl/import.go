package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yatra-app/yatra/internal/importer"
	"github.com/yatra-app/yatra/internal/repo"
	"github.com/yatra-app/yatra/internal/storage"
	"github.com/yatra-app/yatra/internal/store"
)

func newImportCmd(e env) *cobra.Command {
	var (
		dataDir     string
		databaseURL string
		migrate     bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a JSON data directory into Postgres",
		Long: "Copies every collection of the file store into Postgres, keeping IDs and\n" +
			"timestamps. Records that already exist are skipped, so the import can be re-run.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if databaseURL == "" {
				return errors.New("--database-url or DATABASE_URL is required")
			}
			ctx := cmd.Context()
			log := logger(cmd)

			s, err := store.Open(dataDir)
			if err != nil {
				return err
			}
			pool, err := storage.OpenPool(ctx, databaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if migrate {
				if err := storage.Migrate(ctx, pool, log); err != nil {
					return err
				}
			}

			report, err := importer.Copy(ctx, repo.NewFile(s), repo.NewPostgres(pool), log)
			if err != nil {
				return err
			}
			for _, c := range store.Collections {
				n := report[c]
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s copied %d, skipped %d\n", c, n.Copied, n.Skipped)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", e.DataDir, "file store directory to read (default $DATA_DIR)")
	cmd.Flags().StringVar(&databaseURL, "database-url", e.DatabaseURL, "Postgres connection string (default $DATABASE_URL)")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before importing")
	return cmd
}
