package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRun(t *testing.T) {
	path := writeScript(t, `
capacity: 8
hash: identity
ops:
  - {op: put, key: "1", value: a}
  - {op: put, key: "9", value: b}
  - {op: delete, key: "1"}
  - {op: get, key: "9"}
  - {op: get, key: "1"}
`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"lptable", "-dump", path}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "#2 delete 1: a\n")
	assert.Contains(t, out, "#3 get 9: b\n")
	assert.Contains(t, out, "#4 get 1: <absent>\n")
	assert.Contains(t, out, "size=1 capacity=8 tombstones=1")
	assert.Contains(t, out, "\n9 = b\n")
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"lptable"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "usage: lptable")

	stderr.Reset()
	code = run([]string{"lptable", "-nope", "x.yaml"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
}

func TestRun_BadScript(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"lptable", filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr)
	assert.Equal(t, 1, code)

	path := writeScript(t, "capacity: 0\n")
	code = run([]string{"lptable", path}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "invalid script")
	assert.Empty(t, stdout.String())
}
