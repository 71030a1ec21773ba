package testutil

import (
	"testing"

	"github.com/yatra-app/yatra/internal/store"
)

// NewFileStore opens a record store in a per-test temporary directory that
// is removed when the test finishes.
func NewFileStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("testutil.NewFileStore: %v", err)
	}
	return s
}
