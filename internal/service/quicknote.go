package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bexshelf/bexshelf-server/internal/domain"
	domainerrors "github.com/bexshelf/bexshelf-server/internal/errors"
	"github.com/bexshelf/bexshelf-server/internal/id"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// QuickNoteService manages sticky-note reminders. Quick notes are
// deliberately constrained: at most eight per user, at most fifteen
// words each, create and delete only.
type QuickNoteService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewQuickNoteService creates a new quick note service.
func NewQuickNoteService(store *store.Store, logger *slog.Logger) *QuickNoteService {
	return &QuickNoteService{store: store, logger: logger}
}

// CreateQuickNoteRequest contains data for a new quick note.
type CreateQuickNoteRequest struct {
	Content string `json:"content" validate:"required"`
	Color   string `json:"color" validate:"required,max=50"`
}

// ListQuickNotes returns the user's quick notes in stored order.
func (s *QuickNoteService) ListQuickNotes(ctx context.Context, userID string) ([]domain.QuickNote, error) {
	notes, err := s.store.QuickNotes.Filter(ctx, func(n *domain.QuickNote) bool {
		return n.OwnedBy(userID)
	})
	if err != nil {
		return nil, fmt.Errorf("list quick notes: %w", err)
	}
	if notes == nil {
		notes = []domain.QuickNote{}
	}
	return notes, nil
}

// CountQuickNotes returns how many quick notes the user has against the
// per-user cap.
func (s *QuickNoteService) CountQuickNotes(ctx context.Context, userID string) (int, error) {
	notes, err := s.store.QuickNotes.Filter(ctx, func(n *domain.QuickNote) bool {
		return n.OwnedBy(userID)
	})
	if err != nil {
		return 0, fmt.Errorf("count quick notes: %w", err)
	}
	return len(notes), nil
}

// CreateQuickNote adds a quick note, enforcing the word limit and the
// per-user cap. The cap check and the insert run in one locked cycle so
// concurrent creates can't push a user past the limit.
func (s *QuickNoteService) CreateQuickNote(ctx context.Context, userID string, req CreateQuickNoteRequest) (*domain.QuickNote, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if domain.WordCount(content) > domain.MaxQuickNoteWords {
		return nil, domainerrors.Validationf("Quick note cannot exceed %d words", domain.MaxQuickNoteWords)
	}

	noteID, err := id.Generate(id.QuickNote)
	if err != nil {
		return nil, fmt.Errorf("generate quick note ID: %w", err)
	}

	note := domain.QuickNote{
		Record:  domain.Record{ID: noteID},
		Owned:   domain.Owned{UserID: userID},
		Content: content,
		Color:   req.Color,
	}
	note.InitTimestamps()

	err = s.store.QuickNotes.Transact(ctx, func(notes []domain.QuickNote) ([]domain.QuickNote, error) {
		count := 0
		for i := range notes {
			if notes[i].OwnedBy(userID) {
				count++
			}
		}
		if count >= domain.MaxQuickNotesPerUser {
			return nil, domainerrors.Validationf("Maximum of %d quick notes allowed", domain.MaxQuickNotesPerUser)
		}
		return append(notes, note), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Quick note created", "quick_note_id", noteID, "user_id", userID)
	return &note, nil
}

// UpdateQuickNoteRequest contains a partial quick note update. Nil
// fields are left unchanged.
type UpdateQuickNoteRequest struct {
	Content *string `json:"content"`
	Color   *string `json:"color" validate:"omitempty,max=50"`
}

// UpdateQuickNote edits a quick note; content changes are held to the
// same word limit as creation.
func (s *QuickNoteService) UpdateQuickNote(ctx context.Context, userID, noteID string, req UpdateQuickNoteRequest) (*domain.QuickNote, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	note, err := s.store.QuickNotes.Update(ctx,
		func(n *domain.QuickNote) bool { return n.ID == noteID && n.OwnedBy(userID) },
		func(n *domain.QuickNote) error {
			if req.Content != nil {
				content := strings.TrimSpace(*req.Content)
				if content == "" {
					return domainerrors.Validation("Quick note content is required")
				}
				if domain.WordCount(content) > domain.MaxQuickNoteWords {
					return domainerrors.Validationf("Quick note cannot exceed %d words", domain.MaxQuickNoteWords)
				}
				n.Content = content
			}
			if req.Color != nil {
				n.Color = *req.Color
			}
			n.Touch()
			return nil
		},
	)
	if err != nil {
		return nil, orNotFound(err, "quick note not found")
	}
	return note, nil
}

// DeleteQuickNote removes a quick note.
func (s *QuickNoteService) DeleteQuickNote(ctx context.Context, userID, noteID string) error {
	_, err := s.store.QuickNotes.Remove(ctx, func(n *domain.QuickNote) bool {
		return n.ID == noteID && n.OwnedBy(userID)
	})
	if err != nil {
		return orNotFound(err, "quick note not found")
	}

	s.logger.Info("Quick note deleted", "quick_note_id", noteID, "user_id", userID)
	return nil
}
