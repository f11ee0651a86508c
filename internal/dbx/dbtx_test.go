package dbx

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "dbx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE kv (scope TEXT NOT NULL, key TEXT NOT NULL, value BLOB, PRIMARY KEY (scope, key))`)
	require.NoError(t, err)
	return db
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n))
	return n
}

func putBoth(ctx context.Context, tx DBTX) error {
	for _, k := range []string{"auth_token", "user"} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO kv (scope, key, value) VALUES ('api', ?, 'x')`, k); err != nil {
			return err
		}
	}
	return nil
}

func TestWithTx_CommitsBothWrites(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, WithTx(context.Background(), db, putBoth))
	require.Equal(t, 2, countRows(t, db))
}

func TestWithTx_SecondWriteFailingDropsFirst(t *testing.T) {
	db := setupDB(t)
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, func(ctx context.Context, tx DBTX) error {
		if err := putBoth(ctx, tx); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Zero(t, countRows(t, db))
}

func TestWithTx_DuplicateKeyRollsBack(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, func(ctx context.Context, tx DBTX) error {
		if err := putBoth(ctx, tx); err != nil {
			return err
		}
		return putBoth(ctx, tx)
	})
	require.Error(t, err)
	require.Zero(t, countRows(t, db))
}

func TestWithTx_RollsBackAndRepanics(t *testing.T) {
	db := setupDB(t)

	require.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, putBoth(ctx, tx))
			panic("kaput")
		})
	})
	require.Zero(t, countRows(t, db))
}

func TestWithTx_ClosedDB(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	require.ErrorContains(t, err, "begin tx")
	require.False(t, called)
}
