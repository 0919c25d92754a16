/*
File    : golox/callable/function.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package callable holds the runtime representation of a golox function
// (and, transitively, a method or class/instance constructor): a pointer
// to its declaration in the AST, closed over the environment active at
// definition time. It is its own package, sitting above both object and
// environment, because a Function needs an *environment.Environment for
// its closure, and environment.Environment stores object.Value — putting
// Function in object would make object import environment while
// environment already imports object, an import cycle. callable is free
// to import both.
//
// Function intentionally has no Call method. All call logic lives in
// package interp instead (only Bind, which just builds a new closure,
// stays here), the same way the teacher package centralizes
// invocation logic rather than spreading it across the value types
// themselves — interp already owns the environment push/pop and the
// Return-signal handling a call needs, so a method here would just be a
// thin, duplicate wrapper around interp's own logic.
package callable

import (
	"fmt"

	"github.com/akashmaji946/golox/ast"
	"github.com/akashmaji946/golox/environment"
	"github.com/akashmaji946/golox/object"
)

// Function is a user-defined function, method, or lambda.
type Function struct {
	Declaration   *ast.Function
	Closure       *environment.Environment
	IsInitializer bool
	IsClassMethod bool // true for a static ("class") method
}

// New wraps a parsed function declaration as a callable closing over env.
func New(decl *ast.Function, closure *environment.Environment, isInitializer bool) *Function {
	return &Function{Declaration: decl, Closure: closure, IsInitializer: isInitializer}
}

func (*Function) Kind() object.Kind { return object.CallableKind }

func (f *Function) Arity() int { return len(f.Declaration.Params) }

func (f *Function) String() string {
	if f.Declaration.Name != nil {
		return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme)
	}
	return "<fn>"
}

// Bind returns a new Function identical to f except that its closure has
// an extra innermost scope binding "this" to instance — used when a
// method is looked up off an instance, so that a later call to the
// returned value sees the right receiver without interp having to thread
// the receiver through separately.
func (f *Function) Bind(instance *object.Instance) *Function {
	env := environment.New(f.Closure)
	env.Define("this", instance)
	return &Function{
		Declaration:   f.Declaration,
		Closure:       env,
		IsInitializer: f.IsInitializer,
		IsClassMethod: f.IsClassMethod,
	}
}

var _ object.Callable = (*Function)(nil)
