package testsupport

import (
	"testing"

	"displaysync/internal/config"
	"displaysync/internal/history"
)

// MustOpenHistory opens the history journal configured on cfg and registers cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
