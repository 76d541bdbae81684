package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeIni(); err != nil {
		return err
	}
	c.normalizeRegistry()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeIni() error {
	if strings.TrimSpace(c.Ini.Path) == "" {
		if value, ok := os.LookupEnv("DISPLAYSYNC_INI"); ok {
			c.Ini.Path = strings.TrimSpace(value)
		}
	}
	var err error
	if c.Ini.Path, err = expandPath(strings.TrimSpace(c.Ini.Path)); err != nil {
		return fmt.Errorf("ini.path: %w", err)
	}
	c.Ini.Section = strings.TrimSpace(c.Ini.Section)
	if c.Ini.Section == "" {
		c.Ini.Section = defaultIniSection
	}
	return nil
}

func (c *Config) normalizeRegistry() {
	if strings.TrimSpace(c.Registry.Key) == "" {
		if value, ok := os.LookupEnv("DISPLAYSYNC_REGISTRY_KEY"); ok {
			c.Registry.Key = value
		}
	}
	c.Registry.Key = normalizeRegistryKey(c.Registry.Key)
	root := strings.ToUpper(strings.TrimSpace(c.Registry.Root))
	switch root {
	case "", "HKEY_CURRENT_USER":
		root = registryRootCurrentUser
	case "HKEY_LOCAL_MACHINE":
		root = registryRootLocalMachine
	}
	c.Registry.Root = root
}

// normalizeRegistryKey trims whitespace and separators and accepts forward slashes.
func normalizeRegistryKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.ReplaceAll(key, "/", `\`)
	return strings.Trim(key, `\`)
}

func (c *Config) normalizeHistory() error {
	c.History.Path = strings.TrimSpace(c.History.Path)
	if c.History.Path == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.FileName = strings.TrimSpace(c.Logging.FileName)
	if c.Logging.FileName == "" {
		c.Logging.FileName = defaultLogFileName
	}
}
