/*
File    : golox/environment/environment_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/golox/object"
	"github.com/akashmaji946/golox/token"
)

func nameTok(name string) token.Token {
	return token.Token{Kind: token.IDENT, Lexeme: name, Line: 1}
}

func TestDefineAndGet(t *testing.T) {
	env := New(nil)
	env.Define("x", object.Number(42))

	v, err := env.Get(nameTok("x"))
	require.NoError(t, err)
	assert.Equal(t, object.Number(42), v)
}

func TestGet_UndefinedIsError(t *testing.T) {
	env := New(nil)
	_, err := env.Get(nameTok("missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable")
}

func TestGet_UninitializedIsError(t *testing.T) {
	env := New(nil)
	env.DefineUninitialized("x")
	_, err := env.Get(nameTok("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uninitialized")
}

func TestGet_WalksEnclosing(t *testing.T) {
	outer := New(nil)
	outer.Define("x", object.String("outer"))
	inner := New(outer)

	v, err := inner.Get(nameTok("x"))
	require.NoError(t, err)
	assert.Equal(t, object.String("outer"), v)
}

func TestAssign_UpdatesDeclaringScope(t *testing.T) {
	outer := New(nil)
	outer.Define("x", object.Number(1))
	inner := New(outer)

	require.NoError(t, inner.Assign(nameTok("x"), object.Number(2)))

	v, err := outer.Get(nameTok("x"))
	require.NoError(t, err)
	assert.Equal(t, object.Number(2), v)
}

func TestAssign_UndefinedIsError(t *testing.T) {
	env := New(nil)
	err := env.Assign(nameTok("missing"), object.Number(1))
	require.Error(t, err)
}

func TestGetAtAndAssignAt(t *testing.T) {
	global := New(nil)
	block1 := New(global)
	block2 := New(block1)
	block1.Define("x", object.Number(1))

	assert.Equal(t, object.Number(1), block2.GetAt(1, "x"))

	block2.AssignAt(1, nameTok("x"), object.Number(99))
	assert.Equal(t, object.Number(99), block1.values["x"])
}

func TestDefine_AllowsRedefinition(t *testing.T) {
	env := New(nil)
	env.Define("x", object.Number(1))
	env.Define("x", object.Number(2))

	v, err := env.Get(nameTok("x"))
	require.NoError(t, err)
	assert.Equal(t, object.Number(2), v)
}
