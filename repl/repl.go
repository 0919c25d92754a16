/*
File    : golox/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package repl implements golox's interactive Read-Eval-Print Loop: a
readline-backed prompt that keeps a single golox.Lox session alive across
inputs, so a variable or function defined on one line is visible on the
next, exactly like the spec's "global environment persists across
entries" rule.
*/
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/akashmaji946/golox"
	"github.com/akashmaji946/golox/config"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is one interactive session.
type Repl struct {
	cfg       *config.Config
	sessionID uuid.UUID
}

// New creates a Repl presenting itself with cfg (use config.Default() for
// the stock banner/prompt). cfg.NoColor is applied immediately: it flips
// fatih/color's package-level switch, so every Color value this package
// uses (banner, diagnostics) stops emitting escape codes at once rather
// than needing to be threaded through individually.
func New(cfg *config.Config) *Repl {
	color.NoColor = cfg.NoColor
	return &Repl{cfg: cfg, sessionID: uuid.New()}
}

// printBanner shows the startup banner and usage hints.
func (r *Repl) printBanner(w io.Writer) {
	line := func(c *color.Color, s string) { c.Fprintf(w, "%s\n", s) }
	line(blueColor, r.cfg.Line)
	line(greenColor, r.cfg.Banner)
	line(blueColor, r.cfg.Line)
	yellowColor.Fprintf(w, "session %s\n", r.sessionID)
	line(blueColor, r.cfg.Line)
	line(cyanColor, "Type golox code and press enter.")
	line(cyanColor, "Type '.exit' to quit.")
	line(cyanColor, "Use up/down arrows to navigate command history.")
	line(blueColor, r.cfg.Line)
}

// Start runs the REPL main loop against writer for both the banner/
// diagnostics and `print` output, until the user exits or input ends.
func (r *Repl) Start(writer io.Writer) error {
	r.printBanner(writer)

	rl, err := readline.New(r.cfg.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	lx := golox.New()
	lx.SetWriter(writer)

	for {
		line, err := rl.Readline()
		if err != nil { // EOF (Ctrl+D) or read error
			fmt.Fprintln(writer, "Goodbye!")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(writer, "Goodbye!")
			return nil
		}
		rl.SaveHistory(line)

		r.evalLine(writer, lx, line)
	}
}

// evalLine runs one REPL entry through the shared Lox session, color-
// coding diagnostics in red so they stand out from program output.
func (r *Repl) evalLine(writer io.Writer, lx *golox.Lox, line string) {
	var diag strings.Builder
	result := lx.Run(line, &diag)

	if diag.Len() > 0 {
		redColor.Fprint(writer, diag.String())
	}
	if result.Status != golox.OK {
		return
	}
}
