package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yatra-app/yatra/internal/store"
)

func newRepairCmd(e env) *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "repair [collection...]",
		Short: "Move corrupt collection files aside and start them empty",
		Long: "Checks each named collection (all of them by default). A file that cannot be\n" +
			"decoded is renamed to <name>.json.corrupt-<unix time> and replaced by an empty one.",
		RunE: func(cmd *cobra.Command, args []string) error {
			collections := store.Collections
			if len(args) > 0 {
				collections = nil
				for _, name := range args {
					c, err := store.ParseCollection(name)
					if err != nil {
						return err
					}
					collections = append(collections, c)
				}
			}

			s, err := store.Open(dataDir)
			if err != nil {
				return err
			}
			repaired := 0
			for _, c := range collections {
				backup, err := s.Repair(c)
				if err != nil {
					return err
				}
				if backup == "" {
					continue
				}
				repaired++
				fmt.Fprintf(cmd.OutOrStdout(), "%s: corrupt file moved to %s\n", c, backup)
			}
			if repaired == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "all collections readable")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", e.DataDir, "file store directory (default $DATA_DIR)")
	return cmd
}
