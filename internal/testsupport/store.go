package testsupport

import (
	"context"
	"testing"

	"baldr/internal/catalog"
	"baldr/internal/config"
	"baldr/internal/media"
)

// MustOpenStore opens the configured catalog store and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.SQLiteStore {
	t.Helper()

	store, err := catalog.OpenStore(cfg.Catalog.DBPath)
	if err != nil {
		t.Fatalf("catalog.OpenStore: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustUpsert stores records and fails the test on error.
func MustUpsert(t testing.TB, store *catalog.SQLiteStore, records ...*media.Record) {
	t.Helper()

	for _, rec := range records {
		if _, err := store.Upsert(context.Background(), rec); err != nil {
			t.Fatalf("store.Upsert(%s): %v", rec.Ref, err)
		}
	}
}
