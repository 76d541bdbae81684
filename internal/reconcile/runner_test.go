package reconcile_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"displaysync/internal/display"
	"displaysync/internal/failures"
	"displaysync/internal/logging"
	"displaysync/internal/reconcile"
	"displaysync/internal/regstore"
	"displaysync/internal/testsupport"
)

type fixture struct {
	iniPath string
	store   *regstore.Memory
	probe   *testsupport.StaticProbe
	logs    *bytes.Buffer
	runner  *reconcile.Runner
}

func newFixture(t *testing.T, content string) *fixture {
	t.Helper()
	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Console: &logs})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	f := &fixture{
		iniPath: testsupport.WriteIni(t, filepath.Join(t.TempDir(), "settings.ini"), content),
		store:   testsupport.GameRegistry(),
		probe:   &testsupport.StaticProbe{Info: testsupport.WidescreenInfo()},
		logs:    &logs,
	}
	f.runner = reconcile.NewRunner(f.probe, f.store, logger)
	return f
}

func (f *fixture) options(dryRun bool) reconcile.Options {
	return reconcile.Options{
		RegistryKey: testsupport.GameRegistryKey,
		IniPath:     f.iniPath,
		Section:     "Player",
		DryRun:      dryRun,
		Backup:      true,
	}
}

func TestRunUpdatesBothStores(t *testing.T) {
	f := newFixture(t, testsupport.PlayerIni)

	report, err := f.runner.Run(context.Background(), f.options(false))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.Succeeded() || report.State != reconcile.StateDone {
		t.Fatalf("unexpected state %s", report.State)
	}
	if report.RunID == "" {
		t.Fatal("expected run id")
	}

	want := "[Player]\nDisplay=1\nHeight=1440\nWidth=2560\nRefreshRate=144\nColorDepth=32\n; custom comment\nSound3D=4\n"
	if got := testsupport.ReadFile(t, f.iniPath); got != want {
		t.Fatalf("ini =\n%q\nwant\n%q", got, want)
	}
	if got := testsupport.ReadFile(t, report.BackupPath); got != testsupport.PlayerIni {
		t.Fatalf("backup does not hold the original contents: %q", got)
	}

	for _, pair := range report.Updates.Pairs() {
		got, _ := f.store.Get(testsupport.GameRegistryKey, pair.Key)
		if got != regstore.DWord(uint32(pair.Value)) {
			t.Fatalf("registry %s = %+v, want %d", pair.Key, got, pair.Value)
		}
	}
	if len(report.RegistryChanges) != 5 || len(report.IniChanges) != 5 {
		t.Fatalf("unexpected change counts: %d registry, %d ini", len(report.RegistryChanges), len(report.IniChanges))
	}

	out := f.logs.String()
	for _, fragment := range []string{"Set registry Width = 2560", "Set INI [Player] Width=2560", "Display settings synchronized"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in logs:\n%s", fragment, out)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	f := newFixture(t, testsupport.PlayerIni)
	if _, err := f.runner.Run(context.Background(), f.options(false)); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := testsupport.ReadFile(t, f.iniPath)

	report, err := f.runner.Run(context.Background(), f.options(false))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if got := testsupport.ReadFile(t, f.iniPath); got != first {
		t.Fatalf("second run changed the file:\n%q\n%q", first, got)
	}
	for _, c := range report.IniChanges {
		if c.Modified() {
			t.Fatalf("unexpected modification on second run: %+v", c)
		}
	}
}

func TestRunMissingIniKeyLeavesIniUntouched(t *testing.T) {
	content := "[Player]\nDisplay=0\nHeight=1080\nWidth=1920\nColorDepth=32\n"
	f := newFixture(t, content)

	report, err := f.runner.Run(context.Background(), f.options(false))
	var missing *failures.Missing
	if !errors.As(err, &missing) || missing.Kind != failures.MissingIniKey || missing.Name != "RefreshRate" || missing.Section != "Player" {
		t.Fatalf("expected MissingIniKey RefreshRate, got %v", err)
	}
	if report.State != reconcile.StateFailed || report.FailedAt != reconcile.StateValidateIni {
		t.Fatalf("unexpected state %s failed at %s", report.State, report.FailedAt)
	}
	if got := testsupport.ReadFile(t, f.iniPath); got != content {
		t.Fatalf("ini must be unchanged, got %q", got)
	}
	// The registry step already ran and is not rolled back.
	if got, _ := f.store.Get(testsupport.GameRegistryKey, "Width"); got != regstore.DWord(2560) {
		t.Fatalf("expected registry to keep its update, got %+v", got)
	}
	if !strings.Contains(f.logs.String(), `ERROR: MissingIniKey("RefreshRate","Player")`) {
		t.Fatalf("expected error naming the key, got:\n%s", f.logs.String())
	}
}

func TestRunValidationPrecedesMutation(t *testing.T) {
	f := newFixture(t, testsupport.PlayerIni)
	f.store = regstore.NewMemory()
	f.store.Put(testsupport.GameRegistryKey, "Display", regstore.DWord(0))
	f.store.Put(testsupport.GameRegistryKey, "Height", regstore.DWord(1080))
	f.store.Put(testsupport.GameRegistryKey, "Width", regstore.DWord(1920))
	f.store.Put(testsupport.GameRegistryKey, "RefreshRate", regstore.DWord(60))
	runner := reconcile.NewRunner(f.probe, f.store, nil)

	report, err := runner.Run(context.Background(), f.options(false))
	var missing *failures.Missing
	if !errors.As(err, &missing) || missing.Kind != failures.MissingRegistryValue || missing.Name != "ColorDepth" {
		t.Fatalf("expected MissingRegistryValue ColorDepth, got %v", err)
	}
	if report.FailedAt != reconcile.StateValidateRegistry {
		t.Fatalf("unexpected failing state %s", report.FailedAt)
	}
	if f.store.Writes() != 0 {
		t.Fatalf("expected no registry writes, got %d", f.store.Writes())
	}
	if got := testsupport.ReadFile(t, f.iniPath); got != testsupport.PlayerIni {
		t.Fatal("ini must not be touched when the registry fails validation")
	}
}

func TestRunMissingRegistryKey(t *testing.T) {
	f := newFixture(t, testsupport.PlayerIni)
	opts := f.options(false)
	opts.RegistryKey = `Software\Vendor\Other`

	_, err := f.runner.Run(context.Background(), opts)
	var missing *failures.Missing
	if !errors.As(err, &missing) || missing.Kind != failures.MissingRegistryPath {
		t.Fatalf("expected MissingRegistryPath, got %v", err)
	}
}

func TestRunRegistryWriteFailureSkipsIni(t *testing.T) {
	f := newFixture(t, testsupport.PlayerIni)
	f.store.FailWrites = errors.New("access is denied")

	report, err := f.runner.Run(context.Background(), f.options(false))
	if !errors.Is(err, failures.ErrWrite) {
		t.Fatalf("expected write failure, got %v", err)
	}
	if report.FailedAt != reconcile.StatePatchRegistry {
		t.Fatalf("unexpected failing state %s", report.FailedAt)
	}
	if got := testsupport.ReadFile(t, f.iniPath); got != testsupport.PlayerIni {
		t.Fatal("ini must not be attempted after a registry write failure")
	}
	if _, err := os.Stat(f.iniPath + ".bak"); !os.IsNotExist(err) {
		t.Fatalf("expected no backup, stat err = %v", err)
	}
}

func TestRunDryRunIsNoOp(t *testing.T) {
	f := newFixture(t, testsupport.PlayerIni)

	report, err := f.runner.Run(context.Background(), f.options(true))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.DryRun || !report.Succeeded() {
		t.Fatalf("unexpected report %+v", report)
	}
	if got := testsupport.ReadFile(t, f.iniPath); got != testsupport.PlayerIni {
		t.Fatalf("dry run modified ini: %q", got)
	}
	if f.store.Writes() != 0 {
		t.Fatalf("dry run wrote %d registry values", f.store.Writes())
	}
	if _, err := os.Stat(f.iniPath + ".bak"); !os.IsNotExist(err) {
		t.Fatalf("dry run must not write a backup, stat err = %v", err)
	}
	if len(report.IniChanges) != 5 || len(report.RegistryChanges) != 5 {
		t.Fatalf("dry run should still report intended changes: %+v", report)
	}
	out := f.logs.String()
	for _, fragment := range []string{"Set registry Width = 2560 (dry run)", "Set INI [Player] Width=2560 (dry run)"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in logs:\n%s", fragment, out)
		}
	}
}

func TestRunDryRunStillValidates(t *testing.T) {
	f := newFixture(t, "[Video]\nWidth=1\n")
	_, err := f.runner.Run(context.Background(), f.options(true))
	var missing *failures.Missing
	if !errors.As(err, &missing) || missing.Kind != failures.MissingIniSection {
		t.Fatalf("expected MissingIniSection, got %v", err)
	}
}

func TestRunMissingIniFile(t *testing.T) {
	f := newFixture(t, testsupport.PlayerIni)
	opts := f.options(false)
	opts.IniPath = filepath.Join(t.TempDir(), "absent.ini")

	_, err := f.runner.Run(context.Background(), opts)
	var missing *failures.Missing
	if !errors.As(err, &missing) || missing.Kind != failures.MissingIniFile {
		t.Fatalf("expected MissingIniFile, got %v", err)
	}
}

func TestRunRefreshFallbackWarning(t *testing.T) {
	f := newFixture(t, testsupport.PlayerIni)
	info := testsupport.WidescreenInfo()
	info.RefreshRate = display.DefaultRefreshRate
	info.RefreshRateDefaulted = true
	f.probe.Info = info

	report, err := f.runner.Run(context.Background(), f.options(true))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Updates.RefreshRate != 60 {
		t.Fatalf("RefreshRate = %d, want 60", report.Updates.RefreshRate)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", report.Warnings)
	}
}

func TestRunDetectionFailure(t *testing.T) {
	f := newFixture(t, testsupport.PlayerIni)
	f.probe.Err = failures.ErrNoPrimaryDisplay

	report, err := f.runner.Run(context.Background(), f.options(false))
	if !errors.Is(err, failures.ErrDetection) {
		t.Fatalf("expected detection failure, got %v", err)
	}
	if report.FailedAt != reconcile.StateDetectDisplay {
		t.Fatalf("unexpected failing state %s", report.FailedAt)
	}
	if f.store.Writes() != 0 {
		t.Fatal("no store may be touched after detection fails")
	}
}

func TestRunWithoutBackup(t *testing.T) {
	f := newFixture(t, testsupport.PlayerIni)
	opts := f.options(false)
	opts.Backup = false

	report, err := f.runner.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.BackupPath != "" {
		t.Fatalf("unexpected backup %q", report.BackupPath)
	}
	if _, err := os.Stat(f.iniPath + ".bak"); !os.IsNotExist(err) {
		t.Fatalf("expected no backup file, stat err = %v", err)
	}
}

func TestUpdateSetOrder(t *testing.T) {
	u := reconcile.FromDisplay(testsupport.WidescreenInfo())
	want := []string{"Display", "Height", "Width", "RefreshRate", "ColorDepth"}
	keys := u.Keys()
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
	kvs := u.KeyValues()
	if kvs[0].Value != "1" || kvs[2].Value != "2560" {
		t.Fatalf("unexpected key values %+v", kvs)
	}
}
