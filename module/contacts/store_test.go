package contacts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// A named in-memory database so every pool connection sees the same data,
	// unique per test to avoid cross-test bleed.
	db, err := sql.Open("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE contacts (
			id         TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL,
			title      TEXT NOT NULL DEFAULT '',
			phone      TEXT NOT NULL DEFAULT '',
			email      TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`)
	require.NoError(t, err)

	return db
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	contact := Contact{
		ID:        "id-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Title:     "Analyst",
		Phone:     "555-0100",
		Email:     "ada@example.com",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Insert(ctx, contact))

	got, err := store.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, contact.Email, got.Email)
	assert.Equal(t, "Ada Lovelace", got.Name())
}

func TestStoreListOrder(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	for _, c := range []Contact{
		{ID: "1", FirstName: "Grace", LastName: "Hopper", CreatedAt: now},
		{ID: "2", FirstName: "Ada", LastName: "Lovelace", CreatedAt: now},
		{ID: "3", FirstName: "Alan", LastName: "Hopper", CreatedAt: now},
	} {
		require.NoError(t, store.Insert(ctx, c))
	}

	listed, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Ordered by last name, then first name.
	assert.Equal(t, "3", listed[0].ID)
	assert.Equal(t, "1", listed[1].ID)
	assert.Equal(t, "2", listed[2].ID)
}

func TestStoreGetNotFound(t *testing.T) {
	store := NewStore(newTestDB(t))

	_, err := store.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStoreDuplicateID(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	contact := Contact{ID: "dup", FirstName: "A", LastName: "B", CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Insert(ctx, contact))
	assert.Error(t, store.Insert(ctx, contact))
}
