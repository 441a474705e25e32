// Package commands implements the simydb CLI.
package commands

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/almhdy24/simydb"
	"github.com/almhdy24/simydb/cli/internal/config"
	"github.com/almhdy24/simydb/cli/internal/ui"
)

var (
	flagDB    string
	flagDebug bool
	flagYes   bool
)

var rootCmd = &cobra.Command{
	Use:   "simydb",
	Short: "Inspect and mutate a SQLite database",
	Long: `simydb is a thin command-line front end to a SQLite database file.

It can execute statements and queries with bound parameters, list tables
and columns, and manage schema: create and drop tables, add, drop and
rename columns.

The database file is resolved from, in order: the --db flag, the
SIMYDB_DATABASE environment variable or a .simydb.yaml config file,
DATABASE_URL from a .env file, and finally ./simydb.db.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point for the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database file (overrides config and environment)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log every executed statement")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "skip confirmation prompts")
}

// openConn resolves the database path and opens the connection facade.
func openConn() (*simydb.Conn, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	path := cfg.Database
	if flagDB != "" {
		path = flagDB
	}

	var opts []simydb.Option
	if flagDebug || cfg.Debug {
		opts = append(opts, simydb.WithDebug())
	}

	return simydb.Open(path, opts...)
}

// confirm asks the user before a destructive operation, honoring --yes.
func confirm(message string) (bool, error) {
	if flagYes {
		return true, nil
	}
	ok := false
	if err := survey.AskOne(&survey.Confirm{Message: message}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// cliArgs converts trailing command-line arguments into statement bindings.
// Bindings arrive as strings; SQLite's type affinity converts them as
// needed on the engine side.
func cliArgs(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
