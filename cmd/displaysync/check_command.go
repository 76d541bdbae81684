package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"displaysync/internal/preflight"
	"displaysync/internal/validate"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that every value displaysync writes already exists",
		Long: "Check opens the configured registry key and INI file read-only and reports\n" +
			"whether the values displaysync updates are present. Nothing is written.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var reader validate.RegistryReader
			store, storeErr := openRegistry(cfg.Registry.Root)
			if storeErr == nil {
				reader = store
			}

			results := preflight.RunAll(cfg, reader, storeErr)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range preflightLines(results, colorize) {
				fmt.Fprintln(out, line)
			}
			if preflight.Failed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}
