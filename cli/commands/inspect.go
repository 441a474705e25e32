package commands

import (
	"github.com/spf13/cobra"

	"github.com/almhdy24/simydb/cli/internal/ui"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openConn()
		if err != nil {
			return err
		}
		defer conn.Close()

		rows, err := conn.Query(cmd.Context(), `
			SELECT name
			FROM sqlite_master
			WHERE type = 'table'
			  AND name NOT LIKE 'sqlite_%'
			ORDER BY name`)
		if err != nil {
			return err
		}
		return ui.RenderRows(rows)
	},
}

var columnsCmd = &cobra.Command{
	Use:   "columns <table>",
	Short: "Show a table's columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openConn()
		if err != nil {
			return err
		}
		defer conn.Close()

		columns, err := conn.Schema().Columns(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(columns) == 0 {
			ui.Muted("(no such table, or no columns)")
			return nil
		}
		return ui.RenderColumns(columns)
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(columnsCmd)
}
