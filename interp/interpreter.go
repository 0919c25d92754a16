/*
File    : golox/interp/interpreter.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package interp implements the tree-walking evaluator: the final pass
// that actually runs a resolved golox program. It owns every piece of
// "calling" logic in the language — invoking a function, constructing an
// instance — rather than spreading that logic across Function/Class
// methods (only receiver binding stays on callable.Function.Bind), the
// same centralization the
// teacher package's Evaluator uses for CallFunction/RegisterFunction.
// That choice also sidesteps a Go import cycle: callable.Function cannot
// import interp (interp already imports callable), so Function has no
// Call method of its own.
//
// Control flow that needs to unwind several stack frames — return and
// break — is modeled as a distinguished error value rather than as
// sentinel runtime objects threaded through every return path; Execute
// and Evaluate return a plain Go error, and the interpreter checks for it
// exactly once, at the point that knows how to consume it: the enclosing
// while loop for break, the function call for return.
package interp

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akashmaji946/golox/ast"
	"github.com/akashmaji946/golox/callable"
	"github.com/akashmaji946/golox/environment"
	gerrors "github.com/akashmaji946/golox/errors"
	"github.com/akashmaji946/golox/object"
	"github.com/akashmaji946/golox/token"
)

// returnSignal unwinds the Go call stack back to the call site that
// invoked the currently-executing function.
type returnSignal struct{ value object.Value }

func (returnSignal) Error() string { return "return outside of a call (internal)" }

// breakSignal unwinds back to the nearest enclosing loop.
type breakSignal struct{}

func (breakSignal) Error() string { return "break outside of a loop (internal)" }

// Interpreter executes a resolved golox program. One Interpreter can be
// reused across many Run calls against the same globals — the REPL does
// exactly this, so that a variable defined in one line survives into the
// next.
type Interpreter struct {
	Globals *environment.Environment
	env     *environment.Environment
	locals  map[int]int
	writer  io.Writer
}

// New creates an Interpreter with a fresh global environment containing
// golox's native builtins, printing to os.Stdout until SetWriter says
// otherwise.
func New() *Interpreter {
	globals := environment.New(nil)
	it := &Interpreter{Globals: globals, env: globals, locals: map[int]int{}, writer: os.Stdout}
	it.defineNatives()
	return it
}

// SetWriter redirects `print` output, mirroring the teacher package's
// Evaluator.SetWriter — tests use this to capture output into a buffer
// instead of the real stdout.
func (it *Interpreter) SetWriter(w io.Writer) {
	it.writer = w
}

func (it *Interpreter) defineNatives() {
	it.Globals.Define("clock", &object.NativeFunction{
		Name:   "clock",
		ArityN: 0,
		Fn: func(args []object.Value) (object.Value, error) {
			return object.Number(float64(time.Now().UnixNano()) / float64(time.Second)), nil
		},
	})
}

// Interpret runs a whole program (as produced by the parser and
// annotated by the resolver) in the interpreter's current environment.
// locals is the resolver's expression-id -> depth map for this program;
// it is merged into the entries earlier Interpret calls installed, since
// the resolver only sees the current chunk while functions defined by an
// earlier REPL chunk still need their own depths. Expression ids are
// unique across parses, so entries never collide.
func (it *Interpreter) Interpret(stmts []ast.Stmt, locals map[int]int) error {
	for id, depth := range locals {
		it.locals[id] = depth
	}
	for _, s := range stmts {
		if err := it.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// ---- statements ----------------------------------------------------------

func (it *Interpreter) execute(s ast.Stmt) error {
	switch st := s.(type) {
	case *ast.Expression:
		_, err := it.evaluate(st.Expr)
		return err
	case *ast.Print:
		v, err := it.evaluate(st.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(it.writer, v.String())
		return nil
	case *ast.Var:
		if st.Init == nil {
			it.env.DefineUninitialized(st.Name.Lexeme)
			return nil
		}
		v, err := it.evaluate(st.Init)
		if err != nil {
			return err
		}
		it.env.Define(st.Name.Lexeme, v)
		return nil
	case *ast.Block:
		return it.executeBlock(st.Stmts, environment.New(it.env))
	case *ast.If:
		cond, err := it.evaluate(st.Cond)
		if err != nil {
			return err
		}
		if object.Truthy(cond) {
			return it.execute(st.Then)
		} else if st.Else != nil {
			return it.execute(st.Else)
		}
		return nil
	case *ast.While:
		for {
			cond, err := it.evaluate(st.Cond)
			if err != nil {
				return err
			}
			if !object.Truthy(cond) {
				return nil
			}
			if err := it.execute(st.Body); err != nil {
				if _, ok := err.(breakSignal); ok {
					return nil
				}
				return err
			}
		}
	case *ast.Break:
		return breakSignal{}
	case *ast.Return:
		var v object.Value = object.Nil{}
		if st.Value != nil {
			val, err := it.evaluate(st.Value)
			if err != nil {
				return err
			}
			v = val
		}
		return returnSignal{value: v}
	case *ast.FunctionStmt:
		fn := callable.New(st.Fn, it.env, false)
		it.env.Define(st.Fn.Name.Lexeme, fn)
		return nil
	case *ast.Class:
		return it.executeClass(st)
	default:
		panic("interp: unhandled statement type")
	}
}

// executeBlock runs stmts in env, always restoring the interpreter's
// previous environment afterward — including when a statement returns an
// error or unwinds via a control signal, so a panic-free error return
// never leaves the interpreter's env pointer stuck inside a dead scope.
func (it *Interpreter) executeBlock(stmts []ast.Stmt, env *environment.Environment) error {
	previous := it.env
	it.env = env
	defer func() { it.env = previous }()

	for _, s := range stmts {
		if err := it.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) executeClass(c *ast.Class) error {
	var superclass *object.Class
	if c.Superclass != nil {
		sv, err := it.lookUpVariable(c.Superclass.Name, c.Superclass)
		if err != nil {
			return err
		}
		sc, ok := sv.(*object.Class)
		if !ok {
			return gerrors.NewRuntimeError(c.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	it.env.Define(c.Name.Lexeme, object.Nil{})

	classEnv := it.env
	if superclass != nil {
		classEnv = environment.New(it.env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]object.Value, len(c.Methods))
	for _, m := range c.Methods {
		fn := callable.New(m.Fn, classEnv, m.Fn.Name.Lexeme == "init")
		methods[m.Fn.Name.Lexeme] = fn
	}

	classMethods := make(map[string]object.Value, len(c.ClassMethods))
	for _, m := range c.ClassMethods {
		fn := callable.New(m.Fn, classEnv, false)
		fn.IsClassMethod = true
		classMethods[m.Fn.Name.Lexeme] = fn
	}

	var metaSuper *object.Class
	if superclass != nil {
		metaSuper = superclass.Metaclass
	}
	metaclass := &object.Class{
		Name:       c.Name.Lexeme + " metaclass",
		Superclass: metaSuper,
		Methods:    classMethods,
	}

	class := &object.Class{
		Name:       c.Name.Lexeme,
		Superclass: superclass,
		Methods:    methods,
		Metaclass:  metaclass,
	}

	return it.env.Assign(c.Name, class)
}

// ---- expressions -----------------------------------------------------------

func (it *Interpreter) evaluate(e ast.Expr) (object.Value, error) {
	switch ex := e.(type) {
	case *ast.Literal:
		return literalValue(ex.Value), nil
	case *ast.Grouping:
		return it.evaluate(ex.Expression)
	case *ast.Variable:
		return it.lookUpVariable(ex.Name, ex)
	case *ast.This:
		return it.lookUpVariable(ex.Keyword, ex)
	case *ast.Assign:
		v, err := it.evaluate(ex.Value)
		if err != nil {
			return nil, err
		}
		if depth, ok := it.locals[ex.ID()]; ok {
			it.env.AssignAt(depth, ex.Name, v)
		} else if err := it.Globals.Assign(ex.Name, v); err != nil {
			return nil, err
		}
		return v, nil
	case *ast.Logical:
		return it.evalLogical(ex)
	case *ast.Ternary:
		cond, err := it.evaluate(ex.Cond)
		if err != nil {
			return nil, err
		}
		if object.Truthy(cond) {
			return it.evaluate(ex.IfTrue)
		}
		return it.evaluate(ex.IfFalse)
	case *ast.Unary:
		return it.evalUnary(ex)
	case *ast.Binary:
		return it.evalBinary(ex)
	case *ast.Call:
		return it.evalCall(ex)
	case *ast.Get:
		return it.evalGet(ex)
	case *ast.Set:
		return it.evalSet(ex)
	case *ast.Super:
		return it.evalSuper(ex)
	case *ast.Function:
		return callable.New(ex, it.env, false), nil
	default:
		panic("interp: unhandled expression type")
	}
}

func literalValue(v any) object.Value {
	switch x := v.(type) {
	case nil:
		return object.Nil{}
	case bool:
		return object.Bool(x)
	case float64:
		return object.Number(x)
	case string:
		return object.String(x)
	default:
		panic(fmt.Sprintf("interp: unrecognized literal value %#v", v))
	}
}

func (it *Interpreter) lookUpVariable(name token.Token, e ast.Expr) (object.Value, error) {
	if depth, ok := it.locals[e.ID()]; ok {
		v := it.env.GetAt(depth, name.Lexeme)
		if environment.IsUninitialized(v) {
			return nil, gerrors.NewRuntimeError(name, "Use of uninitialized variable '%s'.", name.Lexeme)
		}
		return v, nil
	}
	return it.Globals.Get(name)
}

func (it *Interpreter) evalLogical(ex *ast.Logical) (object.Value, error) {
	left, err := it.evaluate(ex.Left)
	if err != nil {
		return nil, err
	}
	if ex.Op.Kind == token.OR {
		if object.Truthy(left) {
			return left, nil
		}
	} else {
		if !object.Truthy(left) {
			return left, nil
		}
	}
	return it.evaluate(ex.Right)
}

func (it *Interpreter) evalUnary(ex *ast.Unary) (object.Value, error) {
	right, err := it.evaluate(ex.Right)
	if err != nil {
		return nil, err
	}
	switch ex.Op.Kind {
	case token.MINUS:
		n, ok := right.(object.Number)
		if !ok {
			return nil, gerrors.NewRuntimeError(ex.Op, "Operand must be a number.")
		}
		return -n, nil
	case token.BANG:
		return object.Bool(!object.Truthy(right)), nil
	}
	panic("interp: unhandled unary operator")
}

func (it *Interpreter) evalBinary(ex *ast.Binary) (object.Value, error) {
	left, err := it.evaluate(ex.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evaluate(ex.Right)
	if err != nil {
		return nil, err
	}

	switch ex.Op.Kind {
	case token.PLUS:
		if ln, ok := left.(object.Number); ok {
			if rn, ok := right.(object.Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(object.String); ok {
			if rs, ok := right.(object.String); ok {
				return ls + rs, nil
			}
		}
		return nil, gerrors.NewRuntimeError(ex.Op, "Operands must be two numbers or two strings.")
	case token.MINUS:
		ln, rn, err := it.numberOperands(ex.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil
	case token.STAR:
		ln, rn, err := it.numberOperands(ex.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil
	case token.SLASH:
		ln, rn, err := it.numberOperands(ex.Op, left, right)
		if err != nil {
			return nil, err
		}
		// Division by zero follows IEEE-754 float semantics (+Inf/-Inf/NaN);
		// the language raises no error for it.
		return ln / rn, nil
	case token.GREATER:
		ln, rn, err := it.numberOperands(ex.Op, left, right)
		if err != nil {
			return nil, err
		}
		return object.Bool(ln > rn), nil
	case token.GREATER_EQUAL:
		ln, rn, err := it.numberOperands(ex.Op, left, right)
		if err != nil {
			return nil, err
		}
		return object.Bool(ln >= rn), nil
	case token.LESS:
		ln, rn, err := it.numberOperands(ex.Op, left, right)
		if err != nil {
			return nil, err
		}
		return object.Bool(ln < rn), nil
	case token.LESS_EQUAL:
		ln, rn, err := it.numberOperands(ex.Op, left, right)
		if err != nil {
			return nil, err
		}
		return object.Bool(ln <= rn), nil
	case token.BANG_EQUAL:
		return object.Bool(!object.Equal(left, right)), nil
	case token.EQUAL_EQUAL:
		return object.Bool(object.Equal(left, right)), nil
	}
	panic("interp: unhandled binary operator")
}

func (it *Interpreter) numberOperands(op token.Token, left, right object.Value) (object.Number, object.Number, error) {
	ln, ok1 := left.(object.Number)
	rn, ok2 := right.(object.Number)
	if !ok1 || !ok2 {
		return 0, 0, gerrors.NewRuntimeError(op, "Operands must be numbers.")
	}
	return ln, rn, nil
}

func (it *Interpreter) evalCall(ex *ast.Call) (object.Value, error) {
	callee, err := it.evaluate(ex.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]object.Value, 0, len(ex.Args))
	for _, a := range ex.Args {
		v, err := it.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch c := callee.(type) {
	case *object.Class:
		return it.instantiate(c, ex.Paren, args)
	case object.Callable:
		if len(args) != c.Arity() {
			return nil, gerrors.NewRuntimeError(ex.Paren, "Expected %d arguments but got %d.", c.Arity(), len(args))
		}
		return it.callFunction(c, args)
	default:
		return nil, gerrors.NewRuntimeError(ex.Paren, "Can only call functions and classes.")
	}
}

// callFunction invokes any Callable. User-defined functions/methods run
// their body in a fresh environment nested under their closure; native
// functions just run their Go callback directly.
func (it *Interpreter) callFunction(c object.Callable, args []object.Value) (object.Value, error) {
	switch fn := c.(type) {
	case *object.NativeFunction:
		return fn.Fn(args)
	case *callable.Function:
		callEnv := environment.New(fn.Closure)
		for i, p := range fn.Declaration.Params {
			callEnv.Define(p.Lexeme, args[i])
		}
		err := it.executeBlock(fn.Declaration.Body, callEnv)
		if ret, ok := err.(returnSignal); ok {
			if fn.IsInitializer {
				return fn.Closure.GetAt(0, "this"), nil
			}
			return ret.value, nil
		}
		if err != nil {
			return nil, err
		}
		if fn.IsInitializer {
			return fn.Closure.GetAt(0, "this"), nil
		}
		return object.Nil{}, nil
	default:
		panic("interp: unhandled callable type")
	}
}

// instantiate constructs a new instance of cls, running its init method
// (if any) with args, then returning the fresh instance regardless of
// what init returns — matching the language's "initializers always
// return the instance" rule.
func (it *Interpreter) instantiate(cls *object.Class, paren token.Token, args []object.Value) (object.Value, error) {
	if len(args) != cls.Arity() {
		return nil, gerrors.NewRuntimeError(paren, "Expected %d arguments but got %d.", cls.Arity(), len(args))
	}
	instance := object.NewInstance(cls)
	if init, ok := cls.FindMethod("init"); ok {
		fn := init.(*callable.Function).Bind(instance)
		if _, err := it.callFunction(fn, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (it *Interpreter) evalGet(ex *ast.Get) (object.Value, error) {
	obj, err := it.evaluate(ex.Object)
	if err != nil {
		return nil, err
	}
	return it.getProperty(obj, ex.Name)
}

func (it *Interpreter) getProperty(obj object.Value, name token.Token) (object.Value, error) {
	switch recv := obj.(type) {
	case *object.Instance:
		if v, ok := recv.Fields[name.Lexeme]; ok {
			return v, nil
		}
		if m, ok := recv.Class.FindMethod(name.Lexeme); ok {
			return m.(*callable.Function).Bind(recv), nil
		}
		return nil, gerrors.NewRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
	case *object.Class:
		// A class value used as a receiver dispatches to its metaclass —
		// this is the only place golox's "static methods" are reached.
		if m, ok := recv.FindClassMethod(name.Lexeme); ok {
			return m, nil
		}
		return nil, gerrors.NewRuntimeError(name, "Undefined class property '%s'.", name.Lexeme)
	default:
		return nil, gerrors.NewRuntimeError(name, "Only instances and classes have properties.")
	}
}

func (it *Interpreter) evalSet(ex *ast.Set) (object.Value, error) {
	obj, err := it.evaluate(ex.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*object.Instance)
	if !ok {
		return nil, gerrors.NewRuntimeError(ex.Name, "Only instances have fields.")
	}
	v, err := it.evaluate(ex.Value)
	if err != nil {
		return nil, err
	}
	instance.Fields[ex.Name.Lexeme] = v
	return v, nil
}

func (it *Interpreter) evalSuper(ex *ast.Super) (object.Value, error) {
	depth := it.locals[ex.ID()]
	superVal := it.env.GetAt(depth, "super")
	superclass := superVal.(*object.Class)

	// "this" is always defined exactly one scope closer than "super" was,
	// by construction in executeClass/resolver.resolveClass.
	thisVal := it.env.GetAt(depth-1, "this")
	instance := thisVal.(*object.Instance)

	method, ok := superclass.FindMethod(ex.Method.Lexeme)
	if !ok {
		return nil, gerrors.NewRuntimeError(ex.Method, "Undefined property '%s'.", ex.Method.Lexeme)
	}
	return method.(*callable.Function).Bind(instance), nil
}
