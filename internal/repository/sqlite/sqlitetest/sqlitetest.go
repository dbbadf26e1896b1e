// Package sqlitetest - временное SQLite-хранилище для тестов
package sqlitetest

import (
	"casino_engine/internal/repository/sqlite"
	"context"
	"path/filepath"
	"testing"
)

func Open(t testing.TB) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "casino.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close sqlite store: %v", err)
		}
	})
	return store
}
