/*
File    : golox/golox.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package golox ties together the lexer, parser, resolver, and interpreter
into the single entry point every front end (the CLI's run command, and
the REPL) drives a program through.
*/
package golox

import (
	"io"
	"os"

	"github.com/akashmaji946/golox/errors"
	"github.com/akashmaji946/golox/interp"
	"github.com/akashmaji946/golox/lexer"
	"github.com/akashmaji946/golox/parser"
	"github.com/akashmaji946/golox/resolver"
)

// Status classifies how a Run call finished, matching the three exit
// codes the CLI reports (0, 65, 70).
type Status int

const (
	OK Status = iota
	SyntaxError
	RuntimeError
)

// Result is the outcome of running a chunk of golox source.
type Result struct {
	Status   Status
	Warnings []string
}

// Lox is a persistent golox session: it keeps one Interpreter (and hence
// one global environment) alive across multiple Run calls, which is what
// lets a REPL define a variable on one line and read it back on the
// next. A Lox created fresh for a script file run from the command line
// behaves identically to a one-shot interpreter.
type Lox struct {
	interpreter *Interpreter
	out         io.Writer
}

// Interpreter is a re-export of the interp package's evaluator type so
// callers that only import package golox never need to import interp
// directly.
type Interpreter = interp.Interpreter

// New creates a Lox session that prints to os.Stdout.
func New() *Lox {
	return &Lox{interpreter: interp.New(), out: os.Stdout}
}

// SetWriter redirects `print` output and is primarily used by tests.
func (lx *Lox) SetWriter(w io.Writer) {
	lx.out = w
	lx.interpreter.SetWriter(w)
}

// Run lexes, parses, resolves, and interprets source, reporting
// diagnostics to stderr-equivalent sink behavior via errors.Sink, whose
// messages are written to diagW.
//
// Each call resolves only the given source, with a fresh resolver. That
// is enough for a REPL that calls Run once per line: top-level
// declarations are globals, which the resolver leaves unannotated and the
// interpreter looks up by name in the session's persistent global
// environment, and the interpreter keeps the depths resolved for earlier
// lines alongside the new ones.
func (lx *Lox) Run(source string, diagW io.Writer) Result {
	sink := errors.NewSink(diagW)

	lex := lexer.New(source, sink)
	tokens := lex.ScanTokens()
	if sink.HadError {
		return Result{Status: SyntaxError, Warnings: sink.Warnings}
	}

	p := parser.New(tokens, sink)
	stmts := p.Parse()
	if sink.HadError {
		return Result{Status: SyntaxError, Warnings: sink.Warnings}
	}

	res := resolver.New(sink)
	locals := res.Resolve(stmts)
	if sink.HadError {
		return Result{Status: SyntaxError, Warnings: sink.Warnings}
	}

	if err := lx.interpreter.Interpret(stmts, locals); err != nil {
		if rerr, ok := err.(*errors.RuntimeError); ok {
			sink.RuntimeErrorReported(rerr)
		} else {
			// A control-signal escaping every enclosing construct (e.g. a
			// resolver bug let a `break`/`return` through validation) is
			// an interpreter defect, not a user-facing diagnostic.
			panic(err)
		}
		return Result{Status: RuntimeError, Warnings: sink.Warnings}
	}

	return Result{Status: OK, Warnings: sink.Warnings}
}

// RunString is a convenience wrapper for one-shot, non-interactive runs
// (the CLI's `golox file.lox` path) where diagnostics always go to
// os.Stderr.
func RunString(source string) Result {
	lx := New()
	return lx.Run(source, os.Stderr)
}
