package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestCacheClearMemoryOnly(t *testing.T) {
	var buf bytes.Buffer
	be.Err(t, runCacheClear(&buf, ""), nil)
	be.True(t, strings.Contains(buf.String(), "nothing to clear"))
}

func TestCacheClearRemovesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	be.Err(t, os.MkdirAll(filepath.Join(dir, "abc"), 0o755), nil)

	var buf bytes.Buffer
	be.Err(t, runCacheClear(&buf, dir), nil)
	be.True(t, strings.Contains(buf.String(), "Cache cleared"))
	_, err := os.Stat(dir)
	be.True(t, os.IsNotExist(err))
}
