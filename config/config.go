/*
File    : golox/config/config.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package config loads optional REPL/CLI presentation settings (prompt
// text, banner, color toggle) from a YAML file, the same ambient "config
// layer" every sizable CLI in this codebase's lineage carries even when
// the language core itself takes no configuration. Absence of a config
// file is not an error: every field has a sensible zero-config default.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the REPL/CLI's cosmetic settings.
type Config struct {
	Prompt  string `yaml:"prompt"`
	Banner  string `yaml:"banner"`
	Line    string `yaml:"line"`
	NoColor bool   `yaml:"no_color"`
}

// Default returns the configuration used when no config file is present
// or named on the command line.
func Default() *Config {
	return &Config{
		Prompt: "golox> ",
		Banner: "golox - a tree-walking Lox-family interpreter",
		Line:   "--------------------------------------------------",
	}
}

// Load reads a YAML config file at path, starting from Default() and
// overwriting only the fields the file sets. A missing file is not an
// error; it just yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
