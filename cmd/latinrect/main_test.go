package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunTextOutput(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-r", "3", "-n", "4", "-cache-dir", dir}, &stdout, &stderr)
	require.Equal(t, 0, code)
	require.Contains(t, stdout.String(), "r=3 n=4 positive=12 negative=12 difference=0")
}

func TestRunJSONOutput(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-r", "4", "-n", "4", "-cache-dir", dir, "-json"}, &stdout, &stderr)
	require.Equal(t, 0, code)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &results))
	require.Len(t, results, 1)
}

func TestRunRejectsMissingN(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-r", "3"}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "-n is required")
}

func TestRunInvalidInputExitCode(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-r", "5", "-n", "4", "-cache-dir", dir}, &stdout, &stderr)
	require.Equal(t, 1, code)
	require.True(t, strings.Contains(stderr.String(), "InvalidInput"))
}

func TestRunRangeMode(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-r", "2", "-n", "3", "-n-max", "4", "-cache-dir", dir}, &stdout, &stderr)
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
}

func TestRunFusionMode(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-r", "3", "-n", "4", "-fuse", "-cache-dir", dir}, &stdout, &stderr)
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
}
