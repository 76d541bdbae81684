package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"displaysync/internal/config"
	"displaysync/internal/reconcile"
	"displaysync/internal/regstore"
	"displaysync/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	registry   *regstore.Memory
	probe      *testsupport.StaticProbe
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	t.Setenv("DISPLAYSYNC_INI", "")
	t.Setenv("DISPLAYSYNC_REGISTRY_KEY", "")

	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithIni(testsupport.PlayerIni)}, opts...)...)

	configPath := filepath.Join(homeDir, ".config", "displaysync", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	env := &cliTestEnv{
		cfg:        cfg,
		registry:   testsupport.GameRegistry(),
		probe:      &testsupport.StaticProbe{Info: testsupport.WidescreenInfo()},
		configPath: configPath,
		baseDir:    base,
	}

	prevOpen, prevDetector := openRegistry, newDetector
	openRegistry = func(root string) (regstore.Store, error) { return env.registry, nil }
	newDetector = func(*config.Config, *slog.Logger) reconcile.Detector { return env.probe }
	t.Cleanup(func() {
		openRegistry = prevOpen
		newDetector = prevDetector
	})

	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[registry]\nroot = %q\nkey = %q\n\n[ini]\npath = %q\nsection = %q\nbackup = %t\n\n[display]\ndefault_refresh_rate = %d\n\n[logging]\nformat = %q\nlevel = %q\n\n[history]\nenabled = %t\npath = %q\n",
		cfg.Registry.Root,
		cfg.Registry.Key,
		cfg.Ini.Path,
		cfg.Ini.Section,
		cfg.Ini.Backup,
		cfg.Display.DefaultRefreshRate,
		cfg.Logging.Format,
		cfg.Logging.Level,
		cfg.History.Enabled,
		cfg.History.Path,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
