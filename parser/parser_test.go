/*
File    : golox/parser/parser_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/golox/ast"
	"github.com/akashmaji946/golox/errors"
	"github.com/akashmaji946/golox/lexer"
)

func parseSource(t *testing.T, source string) ([]ast.Stmt, *errors.Sink) {
	t.Helper()
	var buf bytes.Buffer
	sink := errors.NewSink(&buf)
	toks := lexer.New(source, sink).ScanTokens()
	stmts := New(toks, sink).Parse()
	return stmts, sink
}

func TestParse_VarDeclaration(t *testing.T) {
	stmts, sink := parseSource(t, "var x = 1;")
	require.False(t, sink.HadError)
	require.Len(t, stmts, 1)
	v, ok := stmts[0].(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name.Lexeme)
	require.NotNil(t, v.Init)
}

func TestParse_VarNoInitializer(t *testing.T) {
	stmts, sink := parseSource(t, "var x;")
	require.False(t, sink.HadError)
	v := stmts[0].(*ast.Var)
	assert.Nil(t, v.Init)
}

func TestParse_TernaryPrecedence(t *testing.T) {
	stmts, sink := parseSource(t, "true ? 1 : 2;")
	require.False(t, sink.HadError)
	exprStmt := stmts[0].(*ast.Expression)
	_, ok := exprStmt.Expr.(*ast.Ternary)
	assert.True(t, ok)
}

func TestParse_ArithmeticPrecedence(t *testing.T) {
	stmts, sink := parseSource(t, "1 + 2 * 3;")
	require.False(t, sink.HadError)
	bin := stmts[0].(*ast.Expression).Expr.(*ast.Binary)
	assert.Equal(t, "+", bin.Op.Lexeme)
	rhs := bin.Right.(*ast.Binary)
	assert.Equal(t, "*", rhs.Op.Lexeme)
}

func TestParse_AssignmentRewrite_Variable(t *testing.T) {
	stmts, sink := parseSource(t, "x = 1;")
	require.False(t, sink.HadError)
	_, ok := stmts[0].(*ast.Expression).Expr.(*ast.Assign)
	assert.True(t, ok)
}

func TestParse_AssignmentRewrite_Get(t *testing.T) {
	stmts, sink := parseSource(t, "a.b = 1;")
	require.False(t, sink.HadError)
	_, ok := stmts[0].(*ast.Expression).Expr.(*ast.Set)
	assert.True(t, ok)
}

func TestParse_InvalidAssignmentTarget(t *testing.T) {
	_, sink := parseSource(t, "1 = 2;")
	assert.True(t, sink.HadError)
}

func TestParse_ForDesugarsToBlockWhile(t *testing.T) {
	stmts, sink := parseSource(t, "for (var i = 0; i < 5; i = i + 1) print i;")
	require.False(t, sink.HadError)
	require.Len(t, stmts, 1)
	block, ok := stmts[0].(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Stmts, 2)
	_, ok = block.Stmts[0].(*ast.Var)
	assert.True(t, ok)
	while, ok := block.Stmts[1].(*ast.While)
	require.True(t, ok)
	whileBody := while.Body.(*ast.Block)
	assert.Len(t, whileBody.Stmts, 2)
}

func TestParse_ClassDeclaration(t *testing.T) {
	stmts, sink := parseSource(t, `
		class Greeter {
			init(name) { this.name = name; }
			greet() { print this.name; }
			class make(name) { return Greeter(name); }
		}
	`)
	require.False(t, sink.HadError)
	cls := stmts[0].(*ast.Class)
	assert.Equal(t, "Greeter", cls.Name.Lexeme)
	assert.Nil(t, cls.Superclass)
	assert.Len(t, cls.Methods, 2)
	assert.Len(t, cls.ClassMethods, 1)
}

func TestParse_ClassWithSuperclass(t *testing.T) {
	stmts, sink := parseSource(t, "class B < A { m() { super.m(); } }")
	require.False(t, sink.HadError)
	cls := stmts[0].(*ast.Class)
	require.NotNil(t, cls.Superclass)
	assert.Equal(t, "A", cls.Superclass.Name.Lexeme)
}

func TestParse_Lambda(t *testing.T) {
	stmts, sink := parseSource(t, "var f = fun(x) { return x; };")
	require.False(t, sink.HadError)
	v := stmts[0].(*ast.Var)
	fn, ok := v.Init.(*ast.Function)
	require.True(t, ok)
	assert.Nil(t, fn.Name)
	assert.Len(t, fn.Params, 1)
}

func TestParse_TooManyParameters(t *testing.T) {
	src := "fun f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "a" + string(rune('0'+i%10))
	}
	src += ") {}"
	_, sink := parseSource(t, src)
	assert.True(t, sink.HadError)
}

func TestParse_SyntaxErrorRecoversAtNextStatement(t *testing.T) {
	stmts, sink := parseSource(t, "var ;\nvar y = 2;")
	assert.True(t, sink.HadError)
	// Parsing should have recovered and still produced the second statement.
	found := false
	for _, s := range stmts {
		if v, ok := s.(*ast.Var); ok && v.Name.Lexeme == "y" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParse_BreakOutsideLoopIsNotAParseError(t *testing.T) {
	// break is syntactically valid anywhere; only the resolver rejects it
	// outside a loop.
	stmts, sink := parseSource(t, "break;")
	require.False(t, sink.HadError)
	_, ok := stmts[0].(*ast.Break)
	assert.True(t, ok)
}
