package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestEval(t *testing.T) {
	tests := []struct {
		name           string
		stdin          string
		args           []string
		expectedCode   int
		expectedStdout string
		expectedStderr string
	}{
		{"expr flag", "", []string{"-expr", "3 + 4 * 2"}, 0, "11\n", ""},
		{"remaining args", "", []string{"(3", "+", "4)", "*", "2"}, 0, "14\n", ""},
		{"stdin", "-5 + 3\n", nil, 0, "-2\n", ""},
		{"stdin crlf", "10 - 4 - 3\r\n", nil, 0, "3\n", ""},
		{"division by zero", "", []string{"-expr", "10 / 0"}, 1, "", "error: division by zero"},
		{"invalid character", "", []string{"-expr", "2 ^ 3"}, 1, "", "invalid character '^' at position 2"},
		{"empty stdin", "", nil, 1, "", "error:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.stdin, tt.args...)
			assert.Equal(t, tt.expectedCode, code)
			assert.Equal(t, tt.expectedStdout, stdout)
			assert.Contains(t, stderr, tt.expectedStderr)
		})
	}
}

func TestEval_Trace(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "-trace", "-expr", "-5 + 3")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "operator (unary)")
	assert.Contains(t, stdout, "5 ~ 3 +")
	assert.Contains(t, stdout, "Result:")
}

func TestEval_JSON(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "-json", "-expr", "(3 + 4) * 2")
	require.Equal(t, 0, code)

	var out jsonResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "3 4 + 2 *", out.RPN)
	require.NotNil(t, out.Result)
	assert.Equal(t, int64(14), *out.Result)
	assert.Len(t, out.Tokens, 7)

	code, stdout, _ = runCLI(t, "", "-json", "-expr", "(3 + 4")
	require.Equal(t, 1, code)
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "mismatched_parentheses", out.Kind)
}

func TestRepl(t *testing.T) {
	code, stdout, stderr := runCLI(t, "1 + 1\n\n2 *\n7 / 2\nquit\n9\n", "-mode", "repl")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "2\n")
	assert.Contains(t, stdout, "3\n")
	assert.NotContains(t, stdout, "9\n")
	assert.Contains(t, stderr, "error:")
}

func TestSuite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	code, stdout, _ := runCLI(t, "",
		"-mode", "suite",
		"-suite", filepath.Join("..", "..", "testdata", "suites", "basic.yaml"),
		"-runs", "2",
		"-output", out,
	)
	require.Equal(t, 0, code, stdout)
	assert.Contains(t, stdout, "=== Suite: basic ===")
	assert.NotContains(t, stdout, "FAIL")

	_, err := os.Stat(out)
	require.NoError(t, err)
}

func TestSuite_FailingCaseExitsNonZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: wrong\ncases:\n  - id: a\n    expression: \"1 + 1\"\n    expect: 3\n"), 0o644))

	code, stdout, _ := runCLI(t, "", "-mode", "suite", "-suite", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "FAIL")
}

func TestRecord_JsonFile(t *testing.T) {
	history := filepath.Join(t.TempDir(), "history.jsonl")
	t.Setenv("ENV", "test")
	t.Setenv("ENV_PATH", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("STORAGE_TYPE", "json_file")
	t.Setenv("HISTORY_FILE", history)

	code, _, _ := runCLI(t, "", "-record", "-expr", "6 * 7")
	require.Equal(t, 0, code)
	code, _, _ = runCLI(t, "", "-record", "-expr", "6 / 0")
	require.Equal(t, 1, code)

	data, err := os.ReadFile(history)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"result":42`)
	assert.Contains(t, lines[1], `"errorKind":"division_by_zero"`)
}

func TestFlags_Invalid(t *testing.T) {
	tests := [][]string{
		{"-mode", "draw"},
		{"-runs", "0"},
		{"-warmup", "-1"},
		{"-log-level", "loud", "-expr", "1"},
		{"-no-such-flag"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			code, _, _ := runCLI(t, "", args...)
			assert.Equal(t, 2, code)
		})
	}
}
