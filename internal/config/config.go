// Package config loads the settings of the lox command from a YAML file.
package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file looked up in the home directory.
const FileName = ".loxrc.yaml"

// Config holds the settings of the lox command.
type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	TraceTokens bool   `yaml:"trace_tokens"`
	PrintAST    bool   `yaml:"print_ast"`
	Color       bool   `yaml:"color"`
	MaxDepth    int    `yaml:"max_depth"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Prompt:      "> ",
		HistoryFile: ".lox_history",
		Color:       true,
		MaxDepth:    1000,
	}
}

// DefaultPath returns the path of the config file in the user's home
// directory, or "" if the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads the config file at path. Settings missing from the file keep
// their defaults. A missing file is reported with an error satisfying
// errors.Is(err, fs.ErrNotExist).
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads settings from r. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("config: max_depth must be a positive integer, got %d", c.MaxDepth)
	}
	return nil
}

// HistoryPath resolves the history file against the home directory when it
// is relative. It returns "" when history is disabled.
func (c Config) HistoryPath() string {
	if c.HistoryFile == "" || filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, c.HistoryFile)
}
