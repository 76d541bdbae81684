package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var iniFlag string
	var sectionFlag string
	var registryKeyFlag string
	var opts syncOptions

	ctx := newCommandContext(&configFlag, &iniFlag, &sectionFlag, &registryKeyFlag)

	rootCmd := &cobra.Command{
		Use:           "displaysync",
		Short:         "Copy the primary display mode into an application's registry key and INI file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runSync(cmd, cfg, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&iniFlag, "ini", "", "INI file to update (overrides ini.path)")
	rootCmd.PersistentFlags().StringVar(&sectionFlag, "section", "", "INI section to update (overrides ini.section)")
	rootCmd.PersistentFlags().StringVar(&registryKeyFlag, "registry-key", "", "Registry key path below the root (overrides registry.key)")

	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Validate and report intended writes without changing anything")
	rootCmd.Flags().BoolVar(&opts.logToFile, "log-to-file", false, "Append log output to a file next to the INI file")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
