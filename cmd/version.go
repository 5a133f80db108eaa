package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/fitrank/internal/scoring"
)

// Set with -ldflags "-X github.com/spigell/fitrank/cmd.version=...".
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fitrank version and the built-in weight presets",
	Run: func(cmd *cobra.Command, _ []string) {
		printVersion(cmd)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s (%s)\n", app, version, runtime.Version())
	fmt.Fprintf(out, "presets: %s\n", strings.Join(scoring.Presets(), ", "))
}
