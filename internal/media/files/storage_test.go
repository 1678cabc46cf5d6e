package files

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bexshelf/bexshelf-server/internal/errors"
)

func testStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir(), "books")
	require.NoError(t, err)
	return s
}

func TestNewStorage_Validation(t *testing.T) {
	_, err := NewStorage("", "books")
	assert.Error(t, err)

	_, err = NewStorage(t.TempDir(), "")
	assert.Error(t, err)
}

func TestStorage_SaveAndResolve(t *testing.T) {
	s := testStorage(t)

	name, err := s.Save("book-abc", ".pdf", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.Equal(t, "book-abc.pdf", name)

	path, err := s.Resolve("book-abc")
	require.NoError(t, err)
	assert.Equal(t, "book-abc.pdf", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
}

func TestStorage_SaveReplacesPrevious(t *testing.T) {
	s := testStorage(t)

	_, err := s.Save("book-abc", ".pdf", []byte("old"))
	require.NoError(t, err)
	_, err = s.Save("book-abc", ".pdf", []byte("new"))
	require.NoError(t, err)

	path, err := s.Resolve("book-abc")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestStorage_SaveNamed(t *testing.T) {
	s := testStorage(t)

	name, err := s.SaveNamed("img-1", "sunset photo.jpg", []byte("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, "img-1-sunset photo.jpg", name)

	// Path components in the original name are stripped.
	name, err = s.SaveNamed("img-2", "../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "img-2-passwd", name)
}

func TestStorage_ResolveNotFound(t *testing.T) {
	s := testStorage(t)

	_, err := s.Resolve("book-missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestStorage_DeleteBestEffort(t *testing.T) {
	s := testStorage(t)

	_, err := s.Save("book-abc", ".pdf", []byte("data"))
	require.NoError(t, err)

	s.Delete("book-abc")
	_, err = s.Resolve("book-abc")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	// Deleting something that isn't there is fine.
	s.Delete("book-abc")
	s.Delete("")
}

func TestProbeImage(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	require.NoError(t, png.Encode(&buf, img))

	info, err := ProbeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 120, info.Width)
	assert.Equal(t, 80, info.Height)
	assert.NotEmpty(t, info.BlurHash)
}

func TestProbeImage_NotAnImage(t *testing.T) {
	_, err := ProbeImage([]byte("definitely not an image"))
	assert.Error(t, err)
}
