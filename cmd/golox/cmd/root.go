/*
File    : golox/cmd/golox/cmd/root.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "golox",
	Short: "golox is a tree-walking interpreter for the Lox family of languages",
	Long: `golox is a Go implementation of Lox: a small, dynamically-typed,
class-based scripting language with closures, single inheritance, and a
REPL.

Run a script:   golox path/to/script.lox
Start the REPL: golox`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file for REPL prompt/banner settings")
}

// Execute runs the root command; callers translate its returned error
// into a process exit code via ExitCodeFor.
func Execute() error {
	return rootCmd.Execute()
}
