package filesystem

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/data")

	expectedContent := "a,b\n1,2\n"
	mfs.AddFile("people.csv", expectedContent)

	content, err := mfs.ReadFile("/test/data/people.csv")
	require.NoError(t, err)
	require.Equal(t, expectedContent, string(content))

	content, err = mfs.ReadFile("people.csv")
	require.NoError(t, err)
	require.Equal(t, expectedContent, string(content))
}

func TestMemoryFileSystem_ReadFile_Missing(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/data")

	_, err := mfs.ReadFile("missing.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/data")
	mfs.AddFile("people.csv", "a\n")

	info, err := mfs.Stat("/test/data/people.csv")
	require.NoError(t, err)
	require.False(t, info.IsDir())
	require.Equal(t, "people.csv", info.Name())
	require.Equal(t, int64(2), info.Size())

	info, err = mfs.Stat("/test/data")
	require.NoError(t, err)
	require.True(t, info.IsDir())

	_, err = mfs.Stat("/elsewhere")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemoryFileSystem_ReadDir_DirectChildrenOnly(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/data")
	mfs.AddFile("b.csv", "x\n")
	mfs.AddFile("a.csv", "x\n")
	mfs.AddFile("nested/c.csv", "x\n")
	mfs.AddDir("empty")

	entries, err := mfs.ReadDir("/test/data")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a.csv", "b.csv", "empty", "nested"}, names)
}

func TestMemoryFileSystem_ReadDir_Errors(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/data")
	mfs.AddFile("a.csv", "x\n")

	_, err := mfs.ReadDir("/nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = mfs.ReadDir("a.csv")
	assert.Error(t, err)
}

func TestMemoryFileSystem_AddBytes_KeepsRawContent(t *testing.T) {
	mfs := NewMemoryFileSystem("/d")
	raw := []byte{0xEF, 0xBB, 0xBF, 'a', 0xFF}
	mfs.AddBytes("raw.csv", raw)

	got, err := mfs.ReadFile("raw.csv")
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}
