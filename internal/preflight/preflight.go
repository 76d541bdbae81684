package preflight

import (
	"path/filepath"

	"displaysync/internal/config"
	"displaysync/internal/deps"
	"displaysync/internal/reconcile"
	"displaysync/internal/validate"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Optional failures degrade a run without stopping it.
	Optional bool
}

// Failed reports whether any required check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}

// RunAll executes every check for cfg. store may be nil when the registry
// could not be opened; storeErr then explains why.
func RunAll(cfg *config.Config, store validate.RegistryReader, storeErr error) []Result {
	if cfg == nil {
		return nil
	}
	keys := reconcile.UpdateSet{}.Keys()

	results := []Result{
		CheckRegistry(store, storeErr, cfg.Registry.Root, cfg.Registry.Key, keys),
		CheckIni(cfg.Ini.Path, cfg.Ini.Section, keys),
		CheckDirectoryAccess("Log directory", filepath.Dir(cfg.LogPath())),
	}
	if cfg.History.Enabled {
		results = append(results, CheckDirectoryAccess("History directory", filepath.Dir(cfg.History.Path)))
	}
	for _, status := range deps.CheckBinaries([]deps.Requirement{deps.RefreshRateRequirement()}) {
		results = append(results, fromStatus(status))
	}
	return results
}

func fromStatus(status deps.Status) Result {
	r := Result{Name: status.Name, Passed: status.Available, Optional: status.Optional}
	if status.Available {
		r.Detail = status.Detail
	} else {
		r.Detail = status.Detail + " (" + status.Description + ")"
	}
	return r
}
