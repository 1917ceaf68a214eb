package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)

// newTestEnv returns an environment writing to buffers and reading
// variables from vars only.
func newTestEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
	}, stdout, stderr
}

// writeFiles creates files below dir, with parent directories.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}
