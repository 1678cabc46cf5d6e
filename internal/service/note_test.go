package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService_SearchAcrossFields(t *testing.T) {
	svc := NewNoteService(newTestStore(t), testLogger())
	ctx := context.Background()

	_, err := svc.CreateNote(ctx, "usr-1", CreateNoteRequest{Title: "Grocery list", Content: "milk, eggs"})
	require.NoError(t, err)
	_, err = svc.CreateNote(ctx, "usr-1", CreateNoteRequest{Title: "Ideas", Content: "a novel about bees", Tags: []string{"writing"}})
	require.NoError(t, err)

	byTitle, err := svc.ListNotes(ctx, "usr-1", "grocery")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Grocery list", byTitle[0].Title)

	byContent, err := svc.ListNotes(ctx, "usr-1", "BEES")
	require.NoError(t, err)
	require.Len(t, byContent, 1)

	byTag, err := svc.ListNotes(ctx, "usr-1", "writ")
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "Ideas", byTag[0].Title)

	none, err := svc.ListNotes(ctx, "usr-1", "zebra")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNoteService_PinnedFirst(t *testing.T) {
	svc := NewNoteService(newTestStore(t), testLogger())
	ctx := context.Background()

	_, err := svc.CreateNote(ctx, "usr-1", CreateNoteRequest{Title: "old"})
	require.NoError(t, err)
	pinnedNote, err := svc.CreateNote(ctx, "usr-1", CreateNoteRequest{Title: "pinned"})
	require.NoError(t, err)
	_, err = svc.CreateNote(ctx, "usr-1", CreateNoteRequest{Title: "newest"})
	require.NoError(t, err)

	pin := true
	_, err = svc.UpdateNote(ctx, "usr-1", pinnedNote.ID, UpdateNoteRequest{IsPinned: &pin})
	require.NoError(t, err)

	notes, err := svc.ListNotes(ctx, "usr-1", "")
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "pinned", notes[0].Title)
}

func TestNoteService_TagsNeverNil(t *testing.T) {
	svc := NewNoteService(newTestStore(t), testLogger())
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, "usr-1", CreateNoteRequest{Title: "untagged"})
	require.NoError(t, err)
	assert.NotNil(t, note.Tags)
	assert.Empty(t, note.Tags)
}
