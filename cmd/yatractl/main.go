// Command yatractl is the operator CLI for Yatra: it applies database
// migrations, imports a JSON data directory into Postgres and repairs
// corrupt collection files.
package main

import (
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

// env supplies flag defaults so yatractl reads the same variables as the server.
type env struct {
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DataDir     string `envconfig:"DATA_DIR" default:"data"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var e env
	// Bad values only affect defaults; flags can still override them.
	_ = envconfig.Process("", &e)

	root := &cobra.Command{
		Use:          "yatractl",
		Short:        "Operate a Yatra deployment",
		SilenceUsage: true,
	}
	root.AddCommand(
		newMigrateCmd(e),
		newImportCmd(e),
		newRepairCmd(e),
	)
	return root
}

// logger writes human-readable logs to the command's error stream.
func logger(cmd *cobra.Command) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
}
