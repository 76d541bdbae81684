package config

const (
	defaultConfigPath         = "~/.config/displaysync/config.toml"
	defaultRegistryRoot       = "HKCU"
	defaultIniSection         = "Player"
	defaultIniBackup          = true
	defaultRefreshRate        = 60
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogFileName        = "displaysync.log"
	defaultHistoryEnabled     = true
	defaultHistoryPath        = "~/.local/share/displaysync/history.db"
	registryRootCurrentUser   = "HKCU"
	registryRootLocalMachine  = "HKLM"
	minimumDefaultRefreshRate = 1
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Registry: Registry{
			Root: defaultRegistryRoot,
		},
		Ini: Ini{
			Section: defaultIniSection,
			Backup:  defaultIniBackup,
		},
		Display: Display{
			DefaultRefreshRate: defaultRefreshRate,
		},
		Logging: Logging{
			Format:   defaultLogFormat,
			Level:    defaultLogLevel,
			FileName: defaultLogFileName,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Path:    defaultHistoryPath,
		},
	}
}
