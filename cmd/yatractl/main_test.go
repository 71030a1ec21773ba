package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes yatractl with args and returns what it printed to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRepair_movesCorruptFileAside(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "likes.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte(`{"items":[]}`), 0o644))

	out, err := run(t, "repair", "--data-dir", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "likes: corrupt file moved to")
	assert.NotContains(t, out, "users:")

	raw, err := os.ReadFile(filepath.Join(dir, "likes.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(raw))

	backups, err := filepath.Glob(filepath.Join(dir, "likes.json.corrupt-*"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestRepair_nothingToDo(t *testing.T) {
	out, err := run(t, "repair", "--data-dir", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, out, "all collections readable")
}

func TestRepair_namedCollectionOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "likes.json"), []byte("garbage"), 0o644))

	out, err := run(t, "repair", "--data-dir", dir, "comments")

	require.NoError(t, err)
	assert.Contains(t, out, "all collections readable")
	raw, err := os.ReadFile(filepath.Join(dir, "likes.json"))
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(raw))
}

func TestRepair_unknownCollection(t *testing.T) {
	_, err := run(t, "repair", "--data-dir", t.TempDir(), "bookings")

	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown collection")
}

func TestImport_requiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := run(t, "import", "--data-dir", t.TempDir())

	require.Error(t, err)
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestMigrate_requiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := run(t, "migrate", "status")

	require.Error(t, err)
	assert.ErrorContains(t, err, "DATABASE_URL")
}
