package commands

import (
	"github.com/spf13/cobra"

	"github.com/almhdy24/simydb/cli/internal/ui"
)

var execCmd = &cobra.Command{
	Use:   "exec <sql> [binding...]",
	Short: "Execute a statement",
	Long:  "Execute a single statement. Trailing arguments are bound to ? placeholders in order.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openConn()
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := conn.Exec(cmd.Context(), args[0], cliArgs(args[1:])...); err != nil {
			return err
		}
		ui.Success("ok")
		if id := conn.LastInsertID(); id > 0 {
			ui.Muted("last insert id: %d", id)
		}
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query <sql> [binding...]",
	Short: "Run a query and print the result",
	Long:  "Run a query and print the result as a table. Trailing arguments are bound to ? placeholders in order.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openConn()
		if err != nil {
			return err
		}
		defer conn.Close()

		rows, err := conn.Query(cmd.Context(), args[0], cliArgs(args[1:])...)
		if err != nil {
			return err
		}
		return ui.RenderRows(rows)
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(queryCmd)
}
