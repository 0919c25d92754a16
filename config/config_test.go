/*
File    : golox/config/config_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_HasPromptAndBanner(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "golox> ", cfg.Prompt)
	assert.NotEmpty(t, cfg.Banner)
	assert.False(t, cfg.NoColor)
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "golox.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \"> \"\nno_color: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "> ", cfg.Prompt)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, Default().Banner, cfg.Banner)
}

func TestLoad_MalformedYAMLIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "golox.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: [unterminated\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
