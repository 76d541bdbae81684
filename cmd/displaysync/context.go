package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"displaysync/internal/config"
	"displaysync/internal/failures"
)

type commandContext struct {
	configFlag      *string
	iniFlag         *string
	sectionFlag     *string
	registryKeyFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, iniFlag, sectionFlag, registryKeyFlag *string) *commandContext {
	return &commandContext{
		configFlag:      configFlag,
		iniFlag:         iniFlag,
		sectionFlag:     sectionFlag,
		registryKeyFlag: registryKeyFlag,
	}
}

// ensureConfig loads the config once, applies flag overrides, then validates.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Read(flagValue(c.configFlag))
		if err != nil {
			c.configErr = failures.Wrap(failures.ErrConfiguration, "config", "load", err)
			return
		}
		if err := cfg.ApplyOverrides(flagValue(c.iniFlag), flagValue(c.sectionFlag), flagValue(c.registryKeyFlag)); err != nil {
			c.configErr = failures.Wrap(failures.ErrConfiguration, "config", "apply flags", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = failures.Wrap(failures.ErrConfiguration, "config", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configPath() string {
	return flagValue(c.configFlag)
}

func flagValue(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
