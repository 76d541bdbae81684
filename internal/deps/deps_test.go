package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := writeStub(t, binDir, "present")
	fallback := writeStub(t, binDir, "fallback")

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary", Optional: true},
		{Name: "Empty", Command: "  "},
		{Name: "Fallback", Command: "also-not-present", Fallbacks: []string{filepath.Join(binDir, "nope"), fallback}},
		{Name: "Dir fallback", Command: "also-not-present", Fallbacks: []string{binDir}},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	cases := []struct {
		available bool
		detail    string
	}{
		{true, present},
		{false, `binary "clearly-not-present-binary" not found`},
		{false, "command not configured"},
		{true, fallback},
		{false, `binary "also-not-present" not found`},
	}
	for i, tc := range cases {
		got := results[i]
		if got.Available != tc.available || got.Detail != tc.detail {
			t.Fatalf("%s: got available=%v detail=%q, want %v %q", got.Name, got.Available, got.Detail, tc.available, tc.detail)
		}
	}
	if !results[1].Optional {
		t.Fatal("expected optional flag to carry through")
	}
	if results[2].Command != "" {
		t.Fatalf("expected trimmed command, got %q", results[2].Command)
	}
}

func TestRefreshRateRequirement(t *testing.T) {
	t.Setenv("SystemRoot", `C:\Windows`)
	req := RefreshRateRequirement()
	if req.Command != "wmic" || !req.Optional {
		t.Fatalf("unexpected requirement %#v", req)
	}
	if runtime.GOOS == "windows" && len(req.Fallbacks) != 1 {
		t.Fatalf("expected wbem fallback on windows, got %v", req.Fallbacks)
	}
	if runtime.GOOS != "windows" && len(req.Fallbacks) != 0 {
		t.Fatalf("expected no fallbacks off windows, got %v", req.Fallbacks)
	}
}

func writeStub(t *testing.T, dir, base string) string {
	t.Helper()
	name := base
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}
