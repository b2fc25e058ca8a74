package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	err := formatter.Success(map[string]string{"result": "success"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error("E_NO_RUNS", "no runs stored"))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_NO_RUNS", resp.Error.Code)
	assert.Equal(t, "no runs stored", resp.Error.Message)
}

func TestOutputFormatter_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success("hello\n"))
	require.NoError(t, formatter.Error("E_RUN_NOT_FOUND", "run not found"))
	assert.Equal(t, "hello\nError [E_RUN_NOT_FOUND]: run not found\n", buf.String())
}

func TestExitError(t *testing.T) {
	base := errors.New("boom")
	err := WrapExitError(ExitFailure, "process log", base)
	assert.Equal(t, "process log: boom", err.Error())
	assert.ErrorIs(t, err, base)

	assert.Equal(t, "bad flag", NewExitError(ExitUsage, "bad flag").Error())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitUsage, GetExitCode(NewExitError(ExitUsage, "x")))
	assert.Equal(t, ExitUsage, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitUsage, "x"))))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}
