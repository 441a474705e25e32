package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/almhdy24/simydb"
	"github.com/almhdy24/simydb/cli/internal/ui"
)

var createTableCmd = &cobra.Command{
	Use:   "create-table <table> <column:definition>...",
	Short: "Create a table",
	Long: `Create a table from column:definition pairs, for example:

    simydb create-table users "id:INTEGER PRIMARY KEY" "name:TEXT NOT NULL"

Nothing happens when the table already exists.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		columns := make([]simydb.ColumnSpec, 0, len(args)-1)
		for _, spec := range args[1:] {
			name, def, ok := strings.Cut(spec, ":")
			if !ok {
				return fmt.Errorf("malformed column spec %q, want column:definition", spec)
			}
			columns = append(columns, simydb.ColumnSpec{Name: name, Definition: def})
		}

		conn, err := openConn()
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := conn.Schema().CreateTable(cmd.Context(), args[0], columns); err != nil {
			return err
		}
		ui.Success("created table %s", args[0])
		return nil
	},
}

var dropTableCmd = &cobra.Command{
	Use:   "drop-table <table>",
	Short: "Drop a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm(fmt.Sprintf("Drop table %q and all its rows?", args[0]))
		if err != nil {
			return err
		}
		if !ok {
			ui.Muted("aborted")
			return nil
		}

		conn, err := openConn()
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := conn.Schema().DropTable(cmd.Context(), args[0]); err != nil {
			return err
		}
		ui.Success("dropped table %s", args[0])
		return nil
	},
}

var addColumnCmd = &cobra.Command{
	Use:   "add-column <table> <column> <definition>",
	Short: "Add a column to a table",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openConn()
		if err != nil {
			return err
		}
		defer conn.Close()

		definition := strings.Join(args[2:], " ")
		if err := conn.Schema().AddColumn(cmd.Context(), args[0], args[1], definition); err != nil {
			return err
		}
		ui.Success("added column %s.%s", args[0], args[1])
		return nil
	},
}

var dropColumnCmd = &cobra.Command{
	Use:   "drop-column <table> <column>",
	Short: "Drop a column from a table",
	Long: `Drop a column via a transactional create-copy-swap: the table is rebuilt
without the column and all rows are copied over. On any failure the
original table is left untouched.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm(fmt.Sprintf("Drop column %q from table %q?", args[1], args[0]))
		if err != nil {
			return err
		}
		if !ok {
			ui.Muted("aborted")
			return nil
		}

		conn, err := openConn()
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := conn.Schema().DropColumn(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		ui.Success("dropped column %s.%s", args[0], args[1])
		return nil
	},
}

var renameTableCmd = &cobra.Command{
	Use:   "rename-table <old> <new>",
	Short: "Rename a table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openConn()
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := conn.Schema().RenameTable(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		ui.Success("renamed table %s to %s", args[0], args[1])
		return nil
	},
}

var renameColumnCmd = &cobra.Command{
	Use:   "rename-column <table> <old> <new>",
	Short: "Rename a column (requires SQLite >= 3.25.0)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openConn()
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := conn.Schema().RenameColumn(cmd.Context(), args[0], args[1], args[2]); err != nil {
			return err
		}
		ui.Success("renamed column %s.%s to %s", args[0], args[1], args[2])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createTableCmd)
	rootCmd.AddCommand(dropTableCmd)
	rootCmd.AddCommand(addColumnCmd)
	rootCmd.AddCommand(dropColumnCmd)
	rootCmd.AddCommand(renameTableCmd)
	rootCmd.AddCommand(renameColumnCmd)
}
