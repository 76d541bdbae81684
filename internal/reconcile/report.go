package reconcile

import (
	"time"

	"displaysync/internal/display"
	"displaysync/internal/ini"
	"displaysync/internal/regstore"
)

// Report summarizes a run, successful or not.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool

	// State is StateDone or StateFailed. FailedAt is the state that failed.
	State    State
	FailedAt State

	Display         display.Info
	Updates         UpdateSet
	RegistryChanges []regstore.Change
	IniChanges      []ini.Change
	BackupPath      string
	Warnings        []string
}

// Succeeded reports whether the run reached StateDone.
func (r Report) Succeeded() bool {
	return r.State == StateDone
}
