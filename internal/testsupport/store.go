package testsupport

import (
	"context"
	"testing"

	"pplmatch/internal/config"
	"pplmatch/internal/dataset"
	"pplmatch/internal/store"
)

// MustOpenStore opens the config's store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg.Paths.Database)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// ImportTable loads table into the config's database under name.
func ImportTable(t testing.TB, cfg *config.Config, name string, table dataset.Table) {
	t.Helper()

	st, err := store.Open(cfg.Paths.Database)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()
	if err := st.ImportTable(context.Background(), name, table); err != nil {
		t.Fatalf("ImportTable %s: %v", name, err)
	}
}
