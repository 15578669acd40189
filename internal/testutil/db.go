package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

// TempDBPath returns a database path inside a per-test temp directory.
func TempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".inkwell", "inkwell.db")
}

// OpenRaw opens a second, independent connection to the database at path.
// Tests use it to act as an external writer. The connection is closed on cleanup.
func OpenRaw(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// BumpRevision increments the stored revision of a document, simulating a
// save from another process.
func BumpRevision(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	res, err := db.Exec(`UPDATE documents SET revision = revision + 1 WHERE id = ?`, id)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	require.Equal(t, int64(1), n, "document %s not found", id)
}
