package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgload/internal/files/filesystem"
	"github.com/vvka-141/pgload/pkg/pgload"
)

func newTestScanner() (*Scanner, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/data")
	return NewScannerWithFS(fs), fs
}

func TestNewScannerWithFS_NilFilesystem(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil filesystem")
		}
	}()
	NewScannerWithFS(nil)
}

func TestListFiles_SortedAndFiltered(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("orders.csv", "a\n")
	fs.AddFile("customers.csv", "a\n")
	fs.AddFile("notes.txt", "hello")
	fs.AddFile("archive/old.csv", "a\n")
	fs.AddFile("B.csv", "a\n")

	files, err := s.ListFiles("/data", pgload.DefaultFilePattern)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("/data", "B.csv"),
		filepath.Join("/data", "customers.csv"),
		filepath.Join("/data", "orders.csv"),
	}, files)
}

func TestListFiles_CustomPattern(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("a.tsv", "x\n")
	fs.AddFile("b.csv", "x\n")

	files, err := s.ListFiles("/data", "*.tsv")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("/data", "a.tsv")}, files)
}

func TestListFiles_EmptyDirectory(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("readme.md", "x")

	files, err := s.ListFiles("/data", "*.csv")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListFiles_MissingDirectory(t *testing.T) {
	s, _ := newTestScanner()

	_, err := s.ListFiles("/nowhere", "*.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, pgload.ErrSourceNotFound)
}

func TestListFiles_PathIsFile(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("a.csv", "x\n")

	_, err := s.ListFiles("/data/a.csv", "*.csv")
	assert.ErrorIs(t, err, pgload.ErrSourceNotFound)
}

func TestListFiles_BadPattern(t *testing.T) {
	s, _ := newTestScanner()

	_, err := s.ListFiles("/data", "[")
	assert.ErrorIs(t, err, pgload.ErrInvalidConfig)
}

func TestListFiles_OSFilesystem(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "z.csv"), []byte("a\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("a\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.csv"), 0755))

	files, err := NewScanner().ListFiles(dir, "*.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "z.csv")}, files)
}
