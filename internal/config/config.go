package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Registry locates the registry key holding the display values.
type Registry struct {
	Root string `toml:"root"`
	Key  string `toml:"key"`
}

// Ini locates the INI file and the section whose keys are updated.
type Ini struct {
	Path    string `toml:"path"`
	Section string `toml:"section"`
	Backup  bool   `toml:"backup"`
}

// Display contains detection fallbacks.
type Display struct {
	DefaultRefreshRate int `toml:"default_refresh_rate"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format   string `toml:"format"`
	Level    string `toml:"level"`
	FileName string `toml:"file_name"`
}

// History contains configuration for the run journal.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config encapsulates all configuration values for displaysync.
//
// Configuration sections:
//   - Registry: hive root and key path of the display values
//   - Ini: INI file path, target section and backup toggle
//   - Display: refresh-rate fallback used when detection cannot report one
//   - Logging: log format, level and the log file name used by --log-to-file
//   - History: SQLite journal of past runs
type Config struct {
	Registry Registry `toml:"registry"`
	Ini      Ini      `toml:"ini"`
	Display  Display  `toml:"display"`
	Logging  Logging  `toml:"logging"`
	History  History  `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg, resolvedPath, exists, err := Read(path)
	if err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return cfg, resolvedPath, exists, nil
}

// Read locates, parses and normalizes a configuration file without validating it.
// Callers that apply command-line overrides validate afterwards.
func Read(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("displaysync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// LogPath returns the log file used by --log-to-file. It sits alongside the INI file.
func (c *Config) LogPath() string {
	name := strings.TrimSpace(c.Logging.FileName)
	if name == "" {
		name = defaultLogFileName
	}
	dir := filepath.Dir(c.Ini.Path)
	if strings.TrimSpace(c.Ini.Path) == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}

// ApplyOverrides replaces configured values with non-empty command-line values
// and re-normalizes the affected fields.
func (c *Config) ApplyOverrides(iniPath, section, registryKey string) error {
	if v := strings.TrimSpace(iniPath); v != "" {
		expanded, err := expandPath(v)
		if err != nil {
			return fmt.Errorf("--ini: %w", err)
		}
		c.Ini.Path = expanded
	}
	if v := strings.TrimSpace(section); v != "" {
		c.Ini.Section = v
	}
	if v := strings.TrimSpace(registryKey); v != "" {
		c.Registry.Key = normalizeRegistryKey(v)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
