/*
File    : golox/repl/repl_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package repl

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/golox"
	"github.com/akashmaji946/golox/config"
)

// testConfig returns the stock config with color forced off, so
// assertions don't have to strip ANSI escapes — New(cfg) applies
// cfg.NoColor to fatih/color's package-level switch, so this must be set
// per-config rather than once in TestMain.
func testConfig() *config.Config {
	cfg := *config.Default()
	cfg.NoColor = true
	return &cfg
}

func TestNew_AppliesNoColorConfig(t *testing.T) {
	New(testConfig())
	assert.True(t, color.NoColor)

	cfg := *config.Default()
	cfg.NoColor = false
	New(&cfg)
	assert.False(t, color.NoColor)

	// restore plain output for the remaining tests in this package
	New(testConfig())
}

func TestPrintBanner_ContainsSessionIDAndBannerText(t *testing.T) {
	r := New(testConfig())
	var out strings.Builder
	r.printBanner(&out)

	assert.Contains(t, out.String(), testConfig().Banner)
	assert.Contains(t, out.String(), r.sessionID.String())
	assert.Contains(t, out.String(), ".exit")
}

func TestEvalLine_PrintsProgramOutputUndecorated(t *testing.T) {
	r := New(testConfig())
	lx := golox.New()
	var out strings.Builder
	lx.SetWriter(&out)

	r.evalLine(&out, lx, `print "hi";`)
	assert.Equal(t, "hi\n", out.String())
}

func TestEvalLine_SyntaxErrorIsReportedNotPanicked(t *testing.T) {
	r := New(testConfig())
	lx := golox.New()
	var out strings.Builder
	lx.SetWriter(&out)

	assert.NotPanics(t, func() {
		r.evalLine(&out, lx, `var ;`)
	})
	assert.Contains(t, out.String(), "Error")
}

func TestEvalLine_SessionPersistsAcrossLines(t *testing.T) {
	r := New(testConfig())
	lx := golox.New()
	var out strings.Builder
	lx.SetWriter(&out)

	r.evalLine(&out, lx, `var x = 41;`)
	out.Reset()
	r.evalLine(&out, lx, `print x + 1;`)
	assert.Equal(t, "42\n", out.String())
}
