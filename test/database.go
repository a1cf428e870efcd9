package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns the path to a unique sqlite database file in a
// directory that is removed when the test finishes.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), uuid.New().String()+".db")
}
