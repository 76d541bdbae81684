package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// PlayerIni is a typical application INI file with a Player section.
const PlayerIni = "[Player]\nDisplay=0\nHeight=1080\nWidth=1920\nRefreshRate=60\nColorDepth=32\n; custom comment\nSound3D=4\n"

// WriteIni writes content to path, creating parent directories.
func WriteIni(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the contents of path as a string.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
