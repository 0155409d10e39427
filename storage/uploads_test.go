package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real *multipart.FileHeader by encoding and re-parsing
// a form, which is how gin hands them to the handlers.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["photo"]
	require.Len(t, files, 1)
	return files[0]
}

func TestValidateRejectsBadType(t *testing.T) {
	u, err := New(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, u.Validate(fileHeader(t, "machine.pdf", []byte("x"))), ErrBadFileType)
	assert.ErrorIs(t, u.Validate(fileHeader(t, "noext", []byte("x"))), ErrBadFileType)
	assert.NoError(t, u.Validate(fileHeader(t, "machine.JPG", []byte("x"))))
	assert.NoError(t, u.Validate(fileHeader(t, "machine.webp", []byte("x"))))
}

func TestValidateRejectsOversize(t *testing.T) {
	u, err := New(t.TempDir())
	require.NoError(t, err)

	fh := fileHeader(t, "big.png", []byte("x"))
	fh.Size = MaxFileSize + 1
	assert.ErrorIs(t, u.Validate(fh), ErrFileTooLarge)
}

func TestSaveWritesFileAndReturnsPublicPath(t *testing.T) {
	dir := t.TempDir()
	u, err := New(dir)
	require.NoError(t, err)

	path, err := u.Save(fileHeader(t, "photo.png", []byte("pixels")), "sell")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/uploads/sell-"), "got %q", path)
	assert.True(t, strings.HasSuffix(path, ".png"), "got %q", path)

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(path)))
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), data)
}

func TestSaveUniqueNames(t *testing.T) {
	u, err := New(t.TempDir())
	require.NoError(t, err)

	first, err := u.Save(fileHeader(t, "photo.png", []byte("a")), "sell")
	require.NoError(t, err)
	second, err := u.Save(fileHeader(t, "photo.png", []byte("b")), "sell")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
