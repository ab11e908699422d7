package logutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArchiveNumbering(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	require.NoError(t, os.MkdirAll(logDir, 0777))
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "migration_000002.log"), nil, 0666))
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "migration_000007.log"), nil, 0666))
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "unrelated.log"), nil, 0666))

	logFile := filepath.Join(dir, "headshot_migration.log")
	require.NoError(t, os.WriteFile(logFile, []byte("lines"), 0666))

	dest, err := Archive(logFile, logDir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(logDir, "migration_000008.log"), dest)

	_, err = os.Stat(logFile)
	require.True(t, os.IsNotExist(err))

	contents, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "lines", string(contents))
}

func TestArchiveCreatesLogDir(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "run.log")
	require.NoError(t, os.WriteFile(logFile, nil, 0666))

	dest, err := Archive(logFile, filepath.Join(dir, "logs"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "logs", "migration_000001.log"), dest)
}

func TestArchiveMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := Archive(filepath.Join(dir, "absent.log"), filepath.Join(dir, "logs"))
	require.ErrorIs(t, err, ErrNoLogFile)
}
