package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"displaysync/internal/config"
	"displaysync/internal/display"
	"displaysync/internal/failures"
	"displaysync/internal/history"
	"displaysync/internal/logging"
	"displaysync/internal/reconcile"
	"displaysync/internal/regstore"
)

type syncOptions struct {
	dryRun    bool
	logToFile bool
}

var openRegistry = regstore.Open

var (
	systemEnumerator                       = display.NewSystemEnumerator
	refreshSource    display.RefreshSource = display.WMICRefreshSource{}
)

// newDetector hands the run logger to the probe unscoped; the probe adds its
// own component attribute.
var newDetector = func(cfg *config.Config, logger *slog.Logger) reconcile.Detector {
	return display.NewProbe(
		systemEnumerator(),
		refreshSource,
		cfg.Display.DefaultRefreshRate,
		logger,
	)
}

func runSync(cmd *cobra.Command, cfg *config.Config, opts syncOptions) error {
	logOpts := logging.Options{
		Destination: logging.DestinationConsole,
		Console:     cmd.OutOrStdout(),
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
	}
	if opts.logToFile {
		logOpts.Destination = logging.DestinationFile
		logOpts.Path = cfg.LogPath()
	}
	logger, err := logging.New(logOpts)
	if err != nil && opts.logToFile {
		// The log lives beside the INI file. When that directory is gone the
		// run still has to report the missing file, so log to the console.
		fileErr := err
		logOpts.Destination = logging.DestinationConsole
		logOpts.Path = ""
		if logger, err = logging.New(logOpts); err == nil {
			logging.WarnWithContext(logger, fmt.Sprintf("Log file unavailable, logging to console: %v", fileErr), "log_file_unavailable",
				logging.Error(fileErr),
				logging.String(logging.FieldImpact, "run output not written to "+cfg.LogPath()),
			)
		}
	}
	if err != nil {
		return failures.Wrap(failures.ErrConfiguration, "logging", "init", err)
	}

	store, err := openRegistry(cfg.Registry.Root)
	if err != nil {
		err = failures.Wrap(failures.ErrConfiguration, "registry", "open "+cfg.Registry.Root, err)
		logging.ErrorWithContext(logger, err.Error(), "registry_open_failed")
		return err
	}

	ctx := cmd.Context()

	runner := reconcile.NewRunner(newDetector(cfg, logger), store, logger)
	report, runErr := runner.Run(ctx, reconcile.Options{
		RegistryKey: cfg.Registry.Key,
		IniPath:     cfg.Ini.Path,
		Section:     cfg.Ini.Section,
		DryRun:      opts.dryRun,
		Backup:      cfg.Ini.Backup,
	})

	if cfg.History.Enabled {
		recordHistory(ctx, cfg.History.Path, report, runErr, logger)
	}

	if !opts.logToFile && cfg.Logging.Format == "console" {
		if summary := renderChangeSummary(report); summary != "" {
			fmt.Fprintln(cmd.OutOrStdout(), summary)
		}
	}
	return runErr
}

// recordHistory never fails the run; the journal is advisory.
func recordHistory(ctx context.Context, path string, report reconcile.Report, runErr error, logger *slog.Logger) {
	store, err := history.Open(path)
	if err != nil {
		logging.WarnWithContext(logger, fmt.Sprintf("History journal unavailable: %v", err), "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run not recorded"),
		)
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, history.FromReport(report, runErr)); err != nil {
		logging.WarnWithContext(logger, fmt.Sprintf("History journal write failed: %v", err), "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run not recorded"),
		)
	}
}
