package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skosovsky/toolschema"
)

const shellSource = `package tools

// Shell runs commands.
type Shell struct{}

// Run executes a command.
//
// Args:
//     cmd: Command line to execute
func (s *Shell) Run(cmd string, env ...string) error { return nil }

// Echo repeats a message.
func (s *Shell) Echo(msg string) string { return msg }

type config struct{}
`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func writeSource(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shell.go"), []byte(shellSource), 0o644))
	return dir
}

func TestGenerateClassifyOrganize(t *testing.T) {
	src := writeSource(t)
	work := t.TempDir()
	schemaPath := filepath.Join(work, "schema")
	classPath := filepath.Join(work, "classes.json")

	_, err := runCLI(t, "generate", src, "-o", schemaPath)
	require.NoError(t, err)
	schema, err := toolschema.LoadAggregated(schemaPath + ".json")
	require.NoError(t, err)
	assert.Equal(t, []string{"Shell"}, schema.Keys())
	run, ok := schema.Method("Shell", "Run")
	require.True(t, ok)
	assert.Equal(t, "Run executes a command.", run.Function.Description)
	assert.Equal(t, []string{"cmd"}, run.Function.Parameters.Required)

	_, err = runCLI(t, "classify", "--schema", schemaPath+".json", "--exclude", "Shell.Echo", "-o", classPath)
	require.NoError(t, err)
	classification, err := toolschema.LoadClassification(classPath)
	require.NoError(t, err)
	assert.True(t, classification.Included("Shell", "Run"))
	assert.False(t, classification.Included("Shell", "Echo"))

	out, err := runCLI(t, "organize", "--schema", schemaPath+".json", "--classification", classPath)
	require.NoError(t, err)
	var tools []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tools))
	require.Len(t, tools, 1)
	assert.Equal(t, "Run", tools[0]["name"])

	out, err = runCLI(t, "organize", "--schema", schemaPath+".json", "--classification", classPath, "--envelope")
	require.NoError(t, err)
	var wrapped []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &wrapped))
	require.Len(t, wrapped, 1)
	assert.Equal(t, "function", wrapped[0]["type"])
}

func TestGenerate_Stdout(t *testing.T) {
	out, err := runCLI(t, "generate", writeSource(t), "--type", "Shell", "-o", "-")
	require.NoError(t, err)
	s, err := toolschema.ReadAggregated(bytes.NewReader([]byte(out)))
	require.NoError(t, err)
	cls, ok := s.Class("Shell")
	require.True(t, ok)
	assert.Equal(t, []string{"Run", "Echo"}, cls.Keys())
}

func TestGenerate_UnknownType(t *testing.T) {
	_, err := runCLI(t, "generate", writeSource(t), "--type", "Missing", "-o", "-")
	require.Error(t, err)
}

func TestOrganize_YAML(t *testing.T) {
	work := t.TempDir()
	schemaPath := filepath.Join(work, "schema.json")
	_, err := runCLI(t, "generate", writeSource(t), "-o", schemaPath)
	require.NoError(t, err)

	yamlPath := filepath.Join(work, "select.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("Shell:\n  Run: false\n  Echo: true\n"), 0o644))

	out, err := runCLI(t, "organize", "--schema", schemaPath, "--classification", yamlPath, "-o", filepath.Join(work, "tools.json"))
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(filepath.Join(work, "tools.json"))
	require.NoError(t, err)
	var tools []map[string]any
	require.NoError(t, json.Unmarshal(data, &tools))
	require.Len(t, tools, 1)
	assert.Equal(t, "Echo", tools[0]["name"])
}

func TestOrganize_UnsupportedClassification(t *testing.T) {
	work := t.TempDir()
	schemaPath := filepath.Join(work, "schema.json")
	_, err := runCLI(t, "generate", writeSource(t), "-o", schemaPath)
	require.NoError(t, err)

	_, err = runCLI(t, "organize", "--schema", schemaPath, "--classification", filepath.Join(work, "c.toml"))
	require.ErrorIs(t, err, toolschema.ErrUnsupportedFile)
}

func TestClassify_BadExclude(t *testing.T) {
	work := t.TempDir()
	schemaPath := filepath.Join(work, "schema.json")
	_, err := runCLI(t, "generate", writeSource(t), "-o", schemaPath)
	require.NoError(t, err)

	for _, ref := range []string{"ShellRun", "Shell.Missing"} {
		_, err := runCLI(t, "classify", "--schema", schemaPath, "--exclude", ref, "-o", "-")
		require.Error(t, err, ref)
	}
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := parseSlogLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNewLoggerFromConfig(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLoggerFromConfig(&buf, loggerConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	logger.Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = newLoggerFromConfig(&buf, loggerConfig{Format: "xml"})
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	work := t.TempDir()
	schemaPath := filepath.Join(work, "from-config.json")
	_, err := runCLI(t, "generate", writeSource(t), "-o", schemaPath)
	require.NoError(t, err)

	cfg := filepath.Join(work, "toolschema.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("schema_file: "+schemaPath+"\n"), 0o644))

	for range 2 {
		out, err := runCLI(t, "classify", "--config", cfg, "-o", "-")
		require.NoError(t, err)
		c, err := toolschema.ReadClassification(bytes.NewReader([]byte(out)))
		require.NoError(t, err)
		assert.True(t, c.Included("Shell", "Run"))
	}
}
