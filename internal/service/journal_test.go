package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bexshelf/bexshelf-server/internal/domain"
	domainerrors "github.com/bexshelf/bexshelf-server/internal/errors"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

func newJournalService(t *testing.T) (*JournalService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	return NewJournalService(st, testLogger()), st
}

func TestJournalService_CreateDefaultsToPrivate(t *testing.T) {
	svc, _ := newJournalService(t)
	ctx := context.Background()

	journal, err := svc.CreateJournal(ctx, "usr-1", CreateJournalRequest{Title: "Morning pages"})
	require.NoError(t, err)
	assert.Equal(t, domain.JournalPrivacyPrivate, journal.Privacy)
}

func TestJournalService_ContentRoundTrip(t *testing.T) {
	svc, _ := newJournalService(t)
	ctx := context.Background()

	journal, err := svc.CreateJournal(ctx, "usr-1", CreateJournalRequest{Title: "Morning pages"})
	require.NoError(t, err)

	// Before any save, reads come back empty with the default theme.
	content, err := svc.GetContent(ctx, "usr-1", journal.ID)
	require.NoError(t, err)
	assert.Empty(t, content.Content)
	assert.Equal(t, domain.DefaultContentTheme, content.Theme)

	saved, err := svc.SaveContent(ctx, "usr-1", journal.ID, SaveContentRequest{
		Content:   "Dear diary",
		WordCount: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultContentTheme, saved.Theme, "missing theme falls back to the default")

	content, err = svc.GetContent(ctx, "usr-1", journal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dear diary", content.Content)
	assert.Equal(t, 2, content.WordCount)
}

func TestJournalService_DeleteRemovesContent(t *testing.T) {
	svc, st := newJournalService(t)
	ctx := context.Background()

	journal, err := svc.CreateJournal(ctx, "usr-1", CreateJournalRequest{Title: "Morning pages"})
	require.NoError(t, err)
	_, err = svc.SaveContent(ctx, "usr-1", journal.ID, SaveContentRequest{Content: "words", WordCount: 1})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteJournal(ctx, "usr-1", journal.ID))

	content, err := st.JournalContent.Get(ctx, journal.ID)
	require.NoError(t, err)
	assert.Nil(t, content)
}

func TestJournalService_ContentCrossUser(t *testing.T) {
	svc, _ := newJournalService(t)
	ctx := context.Background()

	journal, err := svc.CreateJournal(ctx, "usr-1", CreateJournalRequest{Title: "Morning pages"})
	require.NoError(t, err)

	_, err = svc.GetContent(ctx, "usr-2", journal.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = svc.SaveContent(ctx, "usr-2", journal.ID, SaveContentRequest{Content: "theirs"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestJournalService_UpdatePrivacy(t *testing.T) {
	svc, _ := newJournalService(t)
	ctx := context.Background()

	journal, err := svc.CreateJournal(ctx, "usr-1", CreateJournalRequest{Title: "Morning pages"})
	require.NoError(t, err)

	public := "public"
	journal, err = svc.UpdateJournal(ctx, "usr-1", journal.ID, UpdateJournalRequest{Privacy: &public})
	require.NoError(t, err)
	assert.Equal(t, domain.JournalPrivacyPublic, journal.Privacy)

	bogus := "secret"
	_, err = svc.UpdateJournal(ctx, "usr-1", journal.ID, UpdateJournalRequest{Privacy: &bogus})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
