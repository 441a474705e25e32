package commands

import (
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
)

// Version is the CLI version, overridable at build time via -ldflags.
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		libVersion, _, _ := sqlite3.Version()
		fmt.Printf("simydb %s (sqlite %s)\n", Version, libVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
