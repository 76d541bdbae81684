package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRegistry(); err != nil {
		return err
	}
	if err := c.validateIni(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRegistry() error {
	if c.Registry.Key == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("registry.key is required. Set DISPLAYSYNC_REGISTRY_KEY, pass --registry-key, or edit %s (create with 'displaysync config init')", defaultPath)
	}
	switch c.Registry.Root {
	case registryRootCurrentUser, registryRootLocalMachine:
	default:
		return fmt.Errorf("registry.root: unsupported value %q (expected HKCU or HKLM)", c.Registry.Root)
	}
	return nil
}

func (c *Config) validateIni() error {
	if c.Ini.Path == "" {
		return errors.New("ini.path is required. Set DISPLAYSYNC_INI, pass --ini, or edit the config file")
	}
	if strings.ContainsAny(c.Ini.Section, "[]") {
		return fmt.Errorf("ini.section %q must not contain brackets", c.Ini.Section)
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if c.Display.DefaultRefreshRate < minimumDefaultRefreshRate {
		return errors.New("display.default_refresh_rate must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Logging.FileName != filepath.Base(c.Logging.FileName) {
		return fmt.Errorf("logging.file_name %q must be a bare file name", c.Logging.FileName)
	}
	return nil
}
