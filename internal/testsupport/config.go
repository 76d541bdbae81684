package testsupport

import (
	"path/filepath"
	"testing"

	"displaysync/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp directory per test.
// The INI path points into that directory but no file is written; use
// WithIni or WriteIni for that.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Registry.Key = GameRegistryKey
	cfgVal.Ini.Path = filepath.Join(base, "game", "settings.ini")
	cfgVal.History.Path = filepath.Join(base, "history.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithIni writes content to the configured INI path.
func WithIni(content string) ConfigOption {
	return func(b *configBuilder) {
		WriteIni(b.t, b.cfg.Ini.Path, content)
	}
}

// WithSection overrides the INI section.
func WithSection(section string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ini.Section = section
	}
}

// WithoutHistory disables the run journal.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.History.Path)
}
