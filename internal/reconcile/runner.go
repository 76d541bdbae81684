package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"displaysync/internal/display"
	"displaysync/internal/failures"
	"displaysync/internal/ini"
	"displaysync/internal/logging"
	"displaysync/internal/regstore"
	"displaysync/internal/validate"
)

// Detector reports the primary display.
type Detector interface {
	DetectPrimary(ctx context.Context) (display.Info, error)
}

// Options selects the targets of a run.
type Options struct {
	RegistryKey string
	IniPath     string
	Section     string
	DryRun      bool
	// Backup copies the INI file to "<path>.bak" before it is rewritten.
	Backup bool
}

// Runner executes reconciliation runs.
type Runner struct {
	probe  Detector
	store  regstore.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewRunner wires a Runner.
func NewRunner(probe Detector, store regstore.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{probe: probe, store: store, logger: logger, now: time.Now}
}

type run struct {
	*Runner
	ctx    context.Context
	opts   Options
	logger *slog.Logger
	report Report
	file   *ini.File
}

// Run performs one pass. The returned report is always populated; err is
// non-nil exactly when report.State is StateFailed.
func (r *Runner) Run(ctx context.Context, opts Options) (Report, error) {
	id := uuid.NewString()
	ctx = logging.WithRunID(ctx, id)
	rn := &run{
		Runner: r,
		ctx:    ctx,
		opts:   opts,
		logger: logging.WithContext(ctx, r.logger),
		report: Report{
			RunID:     id,
			StartedAt: r.now(),
			DryRun:    opts.DryRun,
			State:     StateStart,
		},
	}
	if opts.DryRun {
		rn.logger.Info("Dry run: no changes will be written")
	}

	steps := []struct {
		state State
		fn    func() error
	}{
		{StateDetectDisplay, rn.detectDisplay},
		{StateValidateRegistry, rn.validateRegistry},
		{StatePatchRegistry, rn.patchRegistry},
		{StateValidateIni, rn.validateIni},
		{StatePatchIni, rn.patchIni},
	}
	for _, step := range steps {
		rn.report.State = step.state
		rn.logger.Debug("entering state", logging.String(logging.FieldState, step.state.String()))
		if err := step.fn(); err != nil {
			return rn.fail(step.state, err)
		}
	}

	rn.report.State = StateDone
	rn.report.FinishedAt = r.now()
	if opts.DryRun {
		rn.logger.Info("Dry run complete, nothing was written")
	} else {
		rn.logger.Info("Display settings synchronized")
	}
	return rn.report, nil
}

func (rn *run) fail(state State, err error) (Report, error) {
	rn.report.State = StateFailed
	rn.report.FailedAt = state
	rn.report.FinishedAt = rn.now()
	logging.ErrorWithContext(rn.logger, err.Error(), "reconcile_failed",
		logging.String(logging.FieldState, state.String()),
		logging.String(logging.FieldErrorHint, hintFor(err)),
	)
	return rn.report, err
}

func (rn *run) detectDisplay() error {
	info, err := rn.probe.DetectPrimary(rn.ctx)
	if err != nil {
		return err
	}
	rn.report.Display = info
	rn.report.Updates = FromDisplay(info)
	if info.RefreshRateDefaulted {
		rn.report.Warnings = append(rn.report.Warnings,
			fmt.Sprintf("refresh rate could not be detected; using %d Hz", info.RefreshRate))
	}
	return nil
}

func (rn *run) validateRegistry() error {
	return validate.RequireRegistryValues(rn.store, rn.opts.RegistryKey, rn.report.Updates.Keys())
}

func (rn *run) patchRegistry() error {
	patcher := regstore.NewPatcher(rn.store, logging.NewComponentLogger(rn.logger, "registry"))
	for _, pair := range rn.report.Updates.Pairs() {
		change, err := patcher.PatchValue(rn.opts.RegistryKey, pair.Key, pair.Value, rn.opts.DryRun)
		if err != nil {
			return err
		}
		rn.report.RegistryChanges = append(rn.report.RegistryChanges, change)
	}
	return nil
}

func (rn *run) validateIni() error {
	if err := validate.RequireIniFile(rn.opts.IniPath); err != nil {
		return err
	}
	file, err := ini.ReadFile(rn.opts.IniPath)
	if err != nil {
		return failures.Wrap(failures.ErrWrite, "ini", "read "+rn.opts.IniPath, err)
	}
	if err := validate.RequireIniKeys(file.Doc, rn.opts.IniPath, rn.opts.Section, rn.report.Updates.Keys()); err != nil {
		return err
	}
	rn.file = file
	return nil
}

func (rn *run) patchIni() error {
	updates := rn.report.Updates.KeyValues()
	result := ini.Patch(rn.file.Doc.Lines, rn.opts.Section, updates)
	if !result.SectionFound {
		return &failures.Missing{Kind: failures.MissingIniSection, Path: rn.opts.IniPath, Section: rn.opts.Section}
	}
	if unapplied := result.Unapplied(updates); len(unapplied) > 0 {
		return &failures.Missing{Kind: failures.MissingIniKey, Path: rn.opts.IniPath, Section: rn.opts.Section, Name: unapplied[0]}
	}
	rn.report.IniChanges = result.Changes

	logger := logging.NewComponentLogger(rn.logger, "ini")
	suffix := ""
	if rn.opts.DryRun {
		suffix = " (dry run)"
	}
	for _, change := range result.Changes {
		logger.Info(fmt.Sprintf("Set INI [%s] %s%s", rn.opts.Section, change.New, suffix),
			logging.Int("line", change.Line),
			logging.String("previous", change.Old),
		)
	}
	if rn.opts.DryRun {
		return nil
	}

	if rn.opts.Backup {
		backup, err := rn.file.Backup()
		if err != nil {
			return failures.Wrap(failures.ErrWrite, "ini", "backup", err)
		}
		rn.report.BackupPath = backup
		logger.Debug("ini backup written", logging.String("path", backup))
	}
	if err := rn.file.Save(result.Lines); err != nil {
		return failures.Wrap(failures.ErrWrite, "ini", "write "+rn.opts.IniPath, err)
	}
	logger.Info(fmt.Sprintf("Updated %s", rn.opts.IniPath))
	return nil
}

func hintFor(err error) string {
	switch failures.Classify(err) {
	case "detection":
		return "ensure a monitor is connected and marked as the main display"
	case "missing_structure":
		return "launch the application once so it creates its settings, then re-run"
	case "write":
		return "close the application and check permissions, then re-run"
	default:
		return "check logs for details"
	}
}
