package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/yatra-app/yatra/internal/storage"
	"github.com/yatra-app/yatra/migrations"
)

func newMigrateCmd(e env) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect database migrations",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", e.DatabaseURL, "Postgres connection string (default $DATABASE_URL)")

	// withProvider opens the database, runs fn against a goose provider and
	// closes everything again.
	withProvider := func(ctx context.Context, fn func(*goose.Provider) error) error {
		if databaseURL == "" {
			return errors.New("--database-url or DATABASE_URL is required")
		}
		pool, err := storage.OpenPool(ctx, databaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		db := stdlib.OpenDBFromPool(pool)
		defer db.Close()

		provider, err := migrations.NewProvider(db)
		if err != nil {
			return err
		}
		return fn(provider)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd.Context(), func(p *goose.Provider) error {
					results, err := p.Up(cmd.Context())
					if err != nil {
						return err
					}
					for _, r := range results {
						fmt.Fprintf(cmd.OutOrStdout(), "applied %05d %s\n", r.Source.Version, r.Duration)
					}
					if len(results) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd.Context(), func(p *goose.Provider) error {
					r, err := p.Down(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "rolled back %05d\n", r.Source.Version)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withProvider(cmd.Context(), func(p *goose.Provider) error {
					statuses, err := p.Status(cmd.Context())
					if err != nil {
						return err
					}
					for _, s := range statuses {
						fmt.Fprintf(cmd.OutOrStdout(), "%05d %-8s %s\n", s.Source.Version, s.State, s.Source.Path)
					}
					return nil
				})
			},
		},
	)
	return cmd
}
