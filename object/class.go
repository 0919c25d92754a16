/*
File    : golox/object/class.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package object

import "fmt"

// Class is a golox class. Instance methods live in Methods; class
// (static) methods live on a synthetic Metaclass, reached only through
// property lookup on the class value itself (see the interp package's
// getProperty) — this is the "metaclass" shape described in the
// language's design notes: a class is itself treated as an instance of
// its Metaclass when a class method is looked up.
//
// Methods holds object.Value rather than a concrete function type so
// that this package never needs to import package callable (see the
// package doc in value.go for why that matters); every entry is in
// practice a *callable.Function.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]Value
	Metaclass  *Class // nil for a metaclass itself
}

func (*Class) Kind() Kind       { return ClassKind }
func (c *Class) String() string { return c.Name }

// FindMethod looks up name on this class, then its superclass chain.
// Returns (nil, false) if no class in the chain declares it.
func (c *Class) FindMethod(name string) (Value, bool) {
	if c == nil {
		return nil, false
	}
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	return c.Superclass.FindMethod(name)
}

// Arity reports the constructor's arity: the `init` method's parameter
// count if the class (or an ancestor) declares one, else zero. This lets
// a class value satisfy Callable so `Call` expressions can construct it
// like any other callable.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		if callable, ok := init.(Callable); ok {
			return callable.Arity()
		}
	}
	return 0
}

// FindClassMethod looks up a static method by consulting this class's
// metaclass and then the metaclass's superclass chain. The interpreter
// links a subclass's metaclass to its superclass's metaclass, so class
// methods are inherited along the whole class hierarchy.
func (c *Class) FindClassMethod(name string) (Value, bool) {
	if c == nil || c.Metaclass == nil {
		return nil, false
	}
	return c.Metaclass.FindMethod(name)
}

// Instance is an instantiated object of a Class: a bag of fields plus a
// back-reference to its class for method lookup.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

// NewInstance creates a zero-field instance of cls.
func NewInstance(cls *Class) *Instance {
	return &Instance{Class: cls, Fields: make(map[string]Value)}
}

func (*Instance) Kind() Kind     { return InstanceKind }
func (i *Instance) String() string { return fmt.Sprintf("%s instance", i.Class.Name) }

// NativeFunction wraps a builtin implemented in Go, such as clock().
type NativeFunction struct {
	Name   string
	ArityN int
	Fn     func(args []Value) (Value, error)
}

func (*NativeFunction) Kind() Kind       { return CallableKind }
func (n *NativeFunction) Arity() int     { return n.ArityN }
func (n *NativeFunction) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }
