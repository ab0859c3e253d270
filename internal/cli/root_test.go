package cli

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "scenariocast", cmd.Use)
	assert.Contains(t, cmd.Long, "cartesian product")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"generate", "validate", "catalog"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestGenerateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	generateCmd, _, err := cmd.Find([]string{"generate"})
	require.NoError(t, err)

	assert.NotNil(t, generateCmd.Flags().Lookup("db"))
	assert.NotNil(t, generateCmd.Flags().Lookup("case"))
}

func TestCatalogCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	catalogCmd, _, err := cmd.Find([]string{"catalog"})
	require.NoError(t, err)

	for _, name := range []string{"run", "latest", "scenario"} {
		assert.NotNil(t, catalogCmd.Flags().Lookup(name), name)
	}
}

func TestInvalidFormat(t *testing.T) {
	path := writeConfig(t, "flags.properties", flagsConfig)

	_, stderr, err := execute(t, "--format", "yaml", "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, `invalid format "yaml"`)
}

func TestUsageErrorsAreCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing_argument", []string{"generate"}},
		{"extra_argument", []string{"validate", "a.properties", "b.properties"}},
		{"unknown_flag", []string{"generate", "--bogus", "a.properties"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stderr, "Error:")
		})
	}
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}

	quiet := newLogger(buf, false)
	quiet.Debug("hidden")
	quiet.Info("hidden too")
	assert.Empty(t, buf.String())

	loud := newLogger(buf, true)
	loud.Debug("shown", "error", "boom")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "err=boom")
	assert.True(t, loud.Enabled(context.Background(), slog.LevelDebug))
}
