package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshprobe/freshprobe/errors"
)

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	database, err := Open(path, nil)
	require.NoError(t, err)
	defer database.Close()

	var mode string
	require.NoError(t, database.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpenReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro.db")

	// Seed a fixture through the writable path
	database, err := Open(path, nil)
	require.NoError(t, err)
	_, err = database.Exec("CREATE TABLE employees (name TEXT, salary INTEGER)")
	require.NoError(t, err)
	_, err = database.Exec("INSERT INTO employees VALUES ('John', 50000)")
	require.NoError(t, err)
	require.NoError(t, database.Close())

	ro, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer ro.Close()

	var name string
	require.NoError(t, ro.QueryRow("SELECT name FROM employees").Scan(&name))
	assert.Equal(t, "John", name)

	// Writes must be rejected
	_, err = ro.Exec("INSERT INTO employees VALUES ('Eve', 1)")
	assert.Error(t, err)
}

func TestOpenReadOnlyMissing(t *testing.T) {
	_, err := OpenReadOnly(filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSourceNotFound))
}
