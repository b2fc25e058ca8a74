package cli

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/matamazon/internal/config"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "matamazon", cmd.Use)
	assert.Contains(t, cmd.Long, "command log")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"inspect", "runs"}

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
}

func TestBatchFlags(t *testing.T) {
	cmd := NewRootCommand()

	shorthands := map[string]string{"log": "l", "system": "s", "orders-out": "o", "system-out": "", "db": ""}
	for name, short := range shorthands {
		f := cmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, short, f.Shorthand, name)
	}
}

func TestDatabaseDefaultFromConfig(t *testing.T) {
	cmd := newRootCommand(config.Config{LogLevel: slog.LevelInfo, DB: "env.db"})
	assert.Equal(t, "env.db", cmd.Flags().Lookup("db").DefValue)

	inspect, _, err := cmd.Find([]string{"inspect"})
	require.NoError(t, err)
	assert.Equal(t, "env.db", inspect.Flags().Lookup("db").DefValue)
}

func TestNormalizeArgs(t *testing.T) {
	got, err := normalizeArgs([]string{"-l", "cmds.log", "-os", "out.txt", "-v", "--db=x.db", "-o", "-"})
	require.NoError(t, err)
	assert.Equal(t, []string{"--log=cmds.log", "--system-out=out.txt", "-v", "--db=x.db", "--orders-out=-"}, got)

	got, err = normalizeArgs(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNormalizeArgsRejects(t *testing.T) {
	tests := map[string][]string{
		"unknown flag":     {"-x", "y"},
		"positional":       {"-l", "a.log", "extra"},
		"missing value":    {"-l"},
		"flag as value":    {"-l", "-s"},
		"switch as value":  {"-o", "-v"},
		"short with equal": {"-l=a.log"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := normalizeArgs(args)
			assert.Error(t, err)
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	opts := &RootOptions{Config: config.Config{LogLevel: slog.LevelWarn}}
	logger := newLogger(nil, opts)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))

	opts.Verbose = true
	logger = newLogger(nil, opts)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
}
