/*
File    : golox/cmd/golox/cmd/run.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akashmaji946/golox"
	"github.com/akashmaji946/golox/config"
	"github.com/akashmaji946/golox/repl"
)

// usageError is returned for command-line misuse (the "> 1 script
// argument" case) so ExitCodeFor can map it to exit 64, the sysexits.h
// EX_USAGE code the language's CLI contract reuses.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func init() {
	rootCmd.Args = maxOneScriptArg
	rootCmd.RunE = runRoot
}

// maxOneScriptArg accepts zero args (REPL) or one (a script path);
// anything more is a usage error, mapped to exit 64 by ExitCodeFor.
func maxOneScriptArg(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return &usageError{msg: fmt.Sprintf("expected at most 1 argument, got %d", len(args))}
	}
	return nil
}

// runRoot implements the top-level CLI contract:
//   - golox              -> start the REPL
//   - golox <path>       -> run the script once and exit
//   - golox a b ...      -> usage error (exit 64), enforced by maxOneScriptArg
func runRoot(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if len(args) == 0 {
		return repl.New(cfg).Start(os.Stdout)
	}
	return runFile(args[0])
}

func runFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	result := golox.RunString(string(source))
	switch result.Status {
	case golox.OK:
		return nil
	case golox.SyntaxError:
		return &exitError{code: 65, msg: "syntax error"}
	case golox.RuntimeError:
		return &exitError{code: 70, msg: "runtime error"}
	default:
		return nil
	}
}

// exitError carries a specific process exit code for a script failure
// that has already had its diagnostics printed by golox.RunString; main
// only needs the code, not a duplicate message, so Error() stays terse.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// ExitCodeFor maps an error returned from Execute to the process exit
// code the CLI contract specifies: 64 for usage errors, 65 for a
// script's syntax errors, 70 for its runtime errors, 1 for anything else
// (I/O failures, bad config, etc).
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	switch e := err.(type) {
	case *exitError:
		return e.code
	case *usageError:
		return 64
	default:
		return 1
	}
}
