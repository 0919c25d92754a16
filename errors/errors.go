/*
File    : golox/errors/errors.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package errors collects and formats the three categories of diagnostic
// that golox's pipeline produces: syntax errors from the lexer and parser,
// static errors (and unused-local warnings) from the resolver, and runtime
// errors from the interpreter. All three share a single accumulation point
// (Sink) so the driver can decide, after a pass completes, whether it is
// safe to run the next stage.
package errors

import (
	"fmt"
	"io"

	"github.com/akashmaji946/golox/token"
)

// RuntimeError is raised while the interpreter evaluates an already-parsed
// program. It carries the token whose evaluation failed (for the line
// number) and a human-readable message. It implements the standard error
// interface so it can be propagated with ordinary Go error returns and
// distinguished, via a type assertion, from the non-error control signals
// (return/break) that share the same unwinding path.
type RuntimeError struct {
	Token   token.Token
	Message string
}

// NewRuntimeError constructs a RuntimeError anchored at tok.
func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface. The format matches the CLI
// diagnostic contract: the message on its own line, the source line below.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

// Sink accumulates diagnostics produced while lexing, parsing, and
// resolving a program, and exposes the "had error" flags the driver
// consults before deciding whether to run the next stage. A Sink is not
// safe for concurrent use — golox is single-threaded end to end.
type Sink struct {
	out             io.Writer
	HadError        bool
	HadRuntimeError bool
	Warnings        []string
}

// NewSink creates a Sink that writes formatted diagnostics to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{out: w}
}

// Reset clears all accumulated state so the Sink can be reused for another
// input without an earlier error carrying over. (golox.Lox.Run creates a
// fresh Sink per call instead of calling Reset.)
func (s *Sink) Reset() {
	s.HadError = false
	s.HadRuntimeError = false
	s.Warnings = nil
}

// Error reports a diagnostic anchored at a bare line number — used by the
// lexer, which has no token to point at yet.
func (s *Sink) Error(line int, message string) {
	s.report(line, "", message)
}

// ErrorAtToken reports a diagnostic anchored at a specific token, used by
// the parser and resolver. EOF tokens are rendered as "at end" rather than
// quoting an empty lexeme.
func (s *Sink) ErrorAtToken(tok token.Token, message string) {
	if tok.Kind == token.EOF {
		s.report(tok.Line, " at end", message)
		return
	}
	s.report(tok.Line, fmt.Sprintf(" at '%s'", tok.Lexeme), message)
}

// Warning reports a non-fatal diagnostic at a given line (currently used
// for the resolver's unused-local-variable warnings). Per the language's
// diagnostic contract, warnings still set HadError: a source file with
// only unused locals still fails with exit code 65.
func (s *Sink) Warning(line int, message string) {
	s.Warnings = append(s.Warnings, message)
	s.report(line, "", message)
}

// RuntimeErrorReported records that a runtime error occurred and prints it
// in the `<message>\n[line N]` format the CLI contract requires.
func (s *Sink) RuntimeErrorReported(err *RuntimeError) {
	s.HadRuntimeError = true
	fmt.Fprintln(s.out, err.Error())
}

func (s *Sink) report(line int, where, message string) {
	fmt.Fprintf(s.out, "[line %d] Error%s: %s\n", line, where, message)
	s.HadError = true
}
