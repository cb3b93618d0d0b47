package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func TestSettings_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	_, err := db.GetSetting(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.SetSetting(ctx, "k", `{"a":1}`))
	value, err := db.GetSetting(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, value)

	// Upsert replaces
	require.NoError(t, db.SetSetting(ctx, "k", `{"a":2}`))
	value, err = db.GetSetting(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, value)

	require.NoError(t, db.DeleteSetting(ctx, "k"))
	_, err = db.GetSetting(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSetting_MissingKeyIsNoop(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	assert.NoError(t, db.DeleteSetting(ctx, "never-existed"))
}
