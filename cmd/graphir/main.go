// Package main implements the graphir CLI, a small driver over the IR
// graph in internal/ir used to exercise and inspect it from the
// command line.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"graphir/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "graphir",
	Short: "Inspect and exercise the graphir IR graph",
	Long:  `graphir builds and reports on the in-memory IR graph: a typed, SSA-style control-flow representation organized as Module -> Function -> BasicBlock -> Instruction.`,
}

// main wires subcommands and persistent flags onto the root command and
// executes it. The process exits with status 1 if execution fails.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "accepted (auto|on|off) but not read; colored output follows the color package's terminal detection")
	rootCmd.PersistentFlags().String("options", "", "path to a TOML compile-options file")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to retain")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
