package testsupport

import (
	"testing"

	"subrename/internal/config"
	"subrename/internal/history"
)

// MustOpenStore opens the rename journal configured in cfg and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
