/*
File    : golox/lexer/lexer_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/golox/errors"
	"github.com/akashmaji946/golox/token"
)

func scan(t *testing.T, source string) ([]token.Token, *errors.Sink) {
	t.Helper()
	var buf bytes.Buffer
	sink := errors.NewSink(&buf)
	toks := New(source, sink).ScanTokens()
	return toks, sink
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanTokens_Punctuation(t *testing.T) {
	toks, sink := scan(t, "(){},.-+;*?:")
	require.False(t, sink.HadError)
	assert.Equal(t, []token.Kind{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON,
		token.STAR, token.QUESTION, token.COLON, token.EOF,
	}, kinds(toks))
}

func TestScanTokens_TwoCharOperators(t *testing.T) {
	toks, sink := scan(t, "! != = == < <= > >=")
	require.False(t, sink.HadError)
	assert.Equal(t, []token.Kind{
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL, token.EOF,
	}, kinds(toks))
}

func TestScanTokens_Keywords(t *testing.T) {
	toks, sink := scan(t, "and class else false for fun if nil or print return super this true var while break")
	require.False(t, sink.HadError)
	want := []token.Kind{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FOR, token.FUN,
		token.IF, token.NIL, token.OR, token.PRINT, token.RETURN, token.SUPER,
		token.THIS, token.TRUE, token.VAR, token.WHILE, token.BREAK, token.EOF,
	}
	assert.Equal(t, want, kinds(toks))
}

func TestScanTokens_String(t *testing.T) {
	toks, sink := scan(t, `"hello world"`)
	require.False(t, sink.HadError)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestScanTokens_MultilineString(t *testing.T) {
	toks, sink := scan(t, "\"line one\nline two\"")
	require.False(t, sink.HadError)
	assert.Equal(t, "line one\nline two", toks[0].Literal)
}

func TestScanTokens_UnterminatedString(t *testing.T) {
	_, sink := scan(t, `"unterminated`)
	assert.True(t, sink.HadError)
}

func TestScanTokens_Number(t *testing.T) {
	toks, sink := scan(t, "123 45.67")
	require.False(t, sink.HadError)
	assert.Equal(t, 123.0, toks[0].Literal)
	assert.Equal(t, 45.67, toks[1].Literal)
}

func TestScanTokens_LineComment(t *testing.T) {
	toks, sink := scan(t, "1 // a comment\n2")
	require.False(t, sink.HadError)
	assert.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
	assert.Equal(t, 2, toks[1].Line)
}

func TestScanTokens_NestedBlockComment(t *testing.T) {
	toks, sink := scan(t, "1 /* outer /* inner */ still outer */ 2")
	require.False(t, sink.HadError)
	assert.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
}

func TestScanTokens_UnterminatedBlockComment(t *testing.T) {
	_, sink := scan(t, "/* never closes")
	assert.True(t, sink.HadError)
}

func TestScanTokens_IdentifierNotKeyword(t *testing.T) {
	toks, sink := scan(t, "classic")
	require.False(t, sink.HadError)
	assert.Equal(t, token.IDENT, toks[0].Kind)
}

func TestScanTokens_LineTracking(t *testing.T) {
	toks, sink := scan(t, "1\n2\n3")
	require.False(t, sink.HadError)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[2].Line)
}

func TestScanTokens_UnexpectedCharacter(t *testing.T) {
	_, sink := scan(t, "@")
	assert.True(t, sink.HadError)
}
