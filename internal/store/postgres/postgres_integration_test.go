package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/homelists/homelists/internal/store"
	"github.com/homelists/homelists/internal/store/storetest"
)

func makePGStore(t *testing.T) store.Store {
	t.Helper()
	dsn := os.Getenv("LISTS_SERVER_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("LISTS_SERVER_POSTGRES_DSN not set; skipping postgres store integration test")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	if err := ApplySchema(context.Background(), db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return NewWithDB(db)
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
