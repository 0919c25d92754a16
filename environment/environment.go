/*
File    : golox/environment/environment.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package environment implements golox's lexical scope chain: a mutable
// name -> value mapping with a link to an enclosing environment. It is
// deliberately a pure data structure — it knows nothing about the
// interpreter or about functions/classes, only about object.Value — so
// that package object (which Function-like values eventually need to
// close over an *Environment) never has to import it back.
package environment

import (
	"github.com/akashmaji946/golox/errors"
	"github.com/akashmaji946/golox/object"
	"github.com/akashmaji946/golox/token"
)

// uninitializedMarker is the sentinel stored for a `var name;` with no
// initializer. It is distinct from object.Nil: reading it is a runtime
// error ("use of uninitialized variable"), whereas a variable explicitly
// assigned Nil reads back as nil without complaint. This gives the
// environment its third semantic state beyond "absent" and "bound":
// absent (key missing from every map in the chain), uninitialized (key
// present, value is this sentinel), and bound (key present, real value).
type uninitializedMarker struct{}

func (uninitializedMarker) Kind() object.Kind { return "uninitialized" }
func (uninitializedMarker) String() string    { return "uninitialized" }

var uninitialized object.Value = uninitializedMarker{}

// IsUninitialized reports whether v is the sentinel GetAt returns for a
// `var name;` declared with no initializer, letting callers outside this
// package (interp's resolved-depth lookup path) raise the same
// "use of uninitialized variable" error Get raises for the by-name path.
func IsUninitialized(v object.Value) bool {
	return v == uninitialized
}

// Environment is one link in the lexical scope chain.
type Environment struct {
	values    map[string]object.Value
	enclosing *Environment
}

// New creates a fresh environment. Pass nil for enclosing to create the
// global environment, the root of every closure chain.
func New(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]object.Value), enclosing: enclosing}
}

// Define binds name to v in this environment. Redefinition is always
// permitted at this layer — the global environment relies on that to
// allow REPL redeclaration, and the resolver is responsible for rejecting
// illegal local redeclaration before the interpreter ever sees it.
func (e *Environment) Define(name string, v object.Value) {
	e.values[name] = v
}

// DefineUninitialized binds name in this environment without giving it a
// value, modeling `var name;` until its (absent) initializer would have
// run.
func (e *Environment) DefineUninitialized(name string) {
	e.values[name] = uninitialized
}

// Get resolves name by walking outward from this environment, the path
// used for globals (no resolver annotation — see GetAt for the resolved
// fast path).
func (e *Environment) Get(name token.Token) (object.Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		if v == uninitialized {
			return nil, errors.NewRuntimeError(name, "Use of uninitialized variable '%s'.", name.Lexeme)
		}
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, errors.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// Assign rebinds an existing name in the environment where it was
// declared, walking outward until it is found. Unlike Define, Assign
// fails if the name is nowhere in the chain.
func (e *Environment) Assign(name token.Token, v object.Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = v
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return errors.NewRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

// GetAt fetches name from the environment exactly `depth` hops up the
// chain from e — the resolver having already proven that environment
// contains the name. Used for every variable/this/super reference the
// resolver annotated with a local depth.
func (e *Environment) GetAt(depth int, name string) object.Value {
	return e.ancestor(depth).values[name]
}

// AssignAt rebinds name exactly `depth` hops up the chain, the resolved
// counterpart to Assign.
func (e *Environment) AssignAt(depth int, name token.Token, v object.Value) {
	e.ancestor(depth).values[name.Lexeme] = v
}

func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.enclosing
	}
	return env
}
