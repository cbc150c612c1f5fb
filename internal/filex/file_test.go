package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectory(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "data", "nested", "polymap.db")

	got, err := EnsureParentDir(dbPath)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "data", "nested"), got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	_, err = os.Stat(dbPath)
	require.True(t, os.IsNotExist(err), "the file itself must not be created")
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "polymap.db")

	first, err := EnsureParentDir(dbPath)
	require.NoError(t, err)
	second, err := EnsureParentDir(dbPath)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureParentDir_FailsWhenParentIsFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureParentDir(filepath.Join(blocker, "polymap.db"))
	require.Error(t, err)
}
