// Package ui provides terminal output helpers for the simydb CLI.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/almhdy24/simydb"
)

var (
	successStyle = color.New(color.FgGreen, color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
	infoStyle    = color.New(color.FgCyan)
	mutedStyle   = color.New(color.FgHiBlack)
)

// Success prints a green success message.
func Success(format string, args ...any) {
	successStyle.Fprintf(os.Stdout, "✓ "+format+"\n", args...)
}

// Error prints a red error message to stderr.
func Error(format string, args ...any) {
	errorStyle.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// Info prints an informational message.
func Info(format string, args ...any) {
	infoStyle.Fprintf(os.Stdout, format+"\n", args...)
}

// Muted prints a low-emphasis message.
func Muted(format string, args ...any) {
	mutedStyle.Fprintf(os.Stdout, format+"\n", args...)
}

// RenderRows prints query results as a table. Column order follows the
// result cursor of the first row.
func RenderRows(rows []simydb.Row) error {
	if len(rows) == 0 {
		Muted("(no rows)")
		return nil
	}

	columns := rows[0].Columns()
	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, columns)
	for _, row := range rows {
		line := make([]string, len(columns))
		for i, col := range columns {
			line[i] = formatValue(row.Value(col))
		}
		data = append(data, line)
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// RenderColumns prints table column metadata in declaration order.
func RenderColumns(columns []simydb.ColumnInfo) error {
	data := make(pterm.TableData, 0, len(columns)+1)
	data = append(data, []string{"cid", "name", "type", "notnull", "default", "pk"})
	for _, col := range columns {
		def := ""
		if col.Default != nil {
			def = *col.Default
		}
		data = append(data, []string{
			fmt.Sprint(col.CID),
			col.Name,
			col.Type,
			fmt.Sprint(col.NotNull),
			def,
			fmt.Sprint(col.PrimaryKey),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprint(v)
}
