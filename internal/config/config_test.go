package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	input := `
prompt: "lox> "
trace_tokens: true
color: false
max_depth: 64
`
	cfg, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	expected := Default()
	expected.Prompt = "lox> "
	expected.TraceTokens = true
	expected.Color = false
	expected.MaxDepth = 64
	require.Equal(t, expected, cfg)
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown key", "colour: true\n"},
		{"wrong type", "max_depth: deep\n"},
		{"invalid depth", "max_depth: 0\n"},
		{"malformed", "prompt: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("print_ast: true\nhistory_file: \"\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.PrintAST)
	require.Empty(t, cfg.HistoryPath(), "an empty history file disables history")
	require.Equal(t, "> ", cfg.Prompt)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.True(t, stderrors.Is(err, fs.ErrNotExist))

	_, err = Load("")
	require.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("bogus: 1\n"), 0o644))

	_, err := Load(path)
	require.ErrorContains(t, err, "config: parse")
}

func TestHistoryPath(t *testing.T) {
	cfg := Default()
	cfg.HistoryFile = "/tmp/lox_history"
	require.Equal(t, "/tmp/lox_history", cfg.HistoryPath())

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg.HistoryFile = ".lox_history"
	require.Equal(t, filepath.Join(home, ".lox_history"), cfg.HistoryPath())
}
