package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bexshelf/bexshelf-server/internal/domain"
)

func testContentStore(t *testing.T) *ContentStore {
	t.Helper()
	dir := t.TempDir()
	return NewContentStore(dir, nil)
}

func TestContentStore_GetAbsentReturnsNil(t *testing.T) {
	cs := testContentStore(t)

	content, err := cs.Get(context.Background(), "jrnl-never-saved")
	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestContentStore_SaveAndGet(t *testing.T) {
	cs := testContentStore(t)
	ctx := context.Background()

	saved, err := cs.Save(ctx, "jrnl-1", "Dear diary, today I wrote Go.", 6, "midnight")
	require.NoError(t, err)
	assert.Equal(t, 6, saved.WordCount)
	assert.Equal(t, "midnight", saved.Theme)

	got, err := cs.Get(ctx, "jrnl-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dear diary, today I wrote Go.", got.Content)
	assert.Equal(t, 6, got.WordCount)
	assert.Equal(t, "midnight", got.Theme)
}

func TestContentStore_SaveDefaultsTheme(t *testing.T) {
	cs := testContentStore(t)

	saved, err := cs.Save(context.Background(), "proj-1", "draft", 1, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultContentTheme, saved.Theme)
}

func TestContentStore_SaveOverwrites(t *testing.T) {
	cs := testContentStore(t)
	ctx := context.Background()

	_, err := cs.Save(ctx, "proj-1", "first draft", 2, "")
	require.NoError(t, err)
	_, err = cs.Save(ctx, "proj-1", "second", 1, "")
	require.NoError(t, err)

	got, err := cs.Get(ctx, "proj-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Content)
	assert.Equal(t, 1, got.WordCount)
}

func TestContentStore_Delete(t *testing.T) {
	cs := testContentStore(t)
	ctx := context.Background()

	_, err := cs.Save(ctx, "jrnl-1", "soon gone", 2, "")
	require.NoError(t, err)

	cs.Delete(ctx, "jrnl-1")

	got, err := cs.Get(ctx, "jrnl-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is a no-op.
	cs.Delete(ctx, "jrnl-1")
}

func TestContentStore_RejectsPathTraversal(t *testing.T) {
	cs := testContentStore(t)
	ctx := context.Background()

	for _, id := range []string{"", "../evil", "a/b", `a\b`} {
		_, err := cs.Get(ctx, id)
		assert.Error(t, err, "id %q", id)
		_, err = cs.Save(ctx, id, "x", 1, "")
		assert.Error(t, err, "id %q", id)
	}
}

func TestStore_NewCreatesDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")

	s, err := New(root, nil)
	require.NoError(t, err)
	require.NotNil(t, s)

	for _, dir := range []string{root, filepath.Join(root, "journal-content"), filepath.Join(root, "notebook-content")} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestStore_NewEmptyPath(t *testing.T) {
	_, err := New("", nil)
	assert.Error(t, err)
}
