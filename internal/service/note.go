package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bexshelf/bexshelf-server/internal/domain"
	"github.com/bexshelf/bexshelf-server/internal/id"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// NoteService manages free-form notes.
type NoteService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(store *store.Store, logger *slog.Logger) *NoteService {
	return &NoteService{store: store, logger: logger}
}

// CreateNoteRequest contains data for a new note.
type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required,max=300"`
	Content string   `json:"content"`
	Tags    []string `json:"tags" validate:"dive,max=50"`
}

// UpdateNoteRequest contains a partial note update.
type UpdateNoteRequest struct {
	Title    *string   `json:"title" validate:"omitempty,max=300"`
	Content  *string   `json:"content"`
	IsPinned *bool     `json:"isPinned"`
	Tags     *[]string `json:"tags" validate:"omitempty,dive,max=50"`
}

// ListNotes returns the user's notes, optionally filtered by a search
// query, pinned notes first and newest first within each group.
func (s *NoteService) ListNotes(ctx context.Context, userID, query string) ([]domain.Note, error) {
	notes, err := s.store.Notes.Filter(ctx, func(n *domain.Note) bool {
		if !n.OwnedBy(userID) {
			return false
		}
		return query == "" || n.Matches(query)
	})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].IsPinned != notes[j].IsPinned {
			return notes[i].IsPinned
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	return notes, nil
}

// ListPinnedNotes returns only the user's pinned notes, newest first.
func (s *NoteService) ListPinnedNotes(ctx context.Context, userID string) ([]domain.Note, error) {
	notes, err := s.store.Notes.Filter(ctx, func(n *domain.Note) bool {
		return n.OwnedBy(userID) && n.IsPinned
	})
	if err != nil {
		return nil, fmt.Errorf("list pinned notes: %w", err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	return notes, nil
}

// GetNote retrieves a note the user owns.
func (s *NoteService) GetNote(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	note, err := s.store.Notes.Find(ctx, func(n *domain.Note) bool {
		return n.ID == noteID && n.OwnedBy(userID)
	})
	if err != nil {
		return nil, orNotFound(err, "note not found")
	}
	return note, nil
}

// CreateNote adds a note.
func (s *NoteService) CreateNote(ctx context.Context, userID string, req CreateNoteRequest) (*domain.Note, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	noteID, err := id.Generate(id.Note)
	if err != nil {
		return nil, fmt.Errorf("generate note ID: %w", err)
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	note := domain.Note{
		Record:  domain.Record{ID: noteID},
		Owned:   domain.Owned{UserID: userID},
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
		Tags:    tags,
	}
	note.InitTimestamps()

	if err := s.store.Notes.Insert(ctx, note); err != nil {
		return nil, fmt.Errorf("save note: %w", err)
	}

	s.logger.Info("Note created", "note_id", noteID, "user_id", userID)
	return &note, nil
}

// UpdateNote applies a partial update to a note the user owns.
func (s *NoteService) UpdateNote(ctx context.Context, userID, noteID string, req UpdateNoteRequest) (*domain.Note, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	note, err := s.store.Notes.Update(ctx,
		func(n *domain.Note) bool { return n.ID == noteID && n.OwnedBy(userID) },
		func(n *domain.Note) error {
			if req.Title != nil {
				n.Title = strings.TrimSpace(*req.Title)
			}
			if req.Content != nil {
				n.Content = *req.Content
			}
			if req.IsPinned != nil {
				n.IsPinned = *req.IsPinned
			}
			if req.Tags != nil {
				n.Tags = *req.Tags
			}
			n.Touch()
			return nil
		},
	)
	if err != nil {
		return nil, orNotFound(err, "note not found")
	}
	return note, nil
}

// DeleteNote removes a note.
func (s *NoteService) DeleteNote(ctx context.Context, userID, noteID string) error {
	_, err := s.store.Notes.Remove(ctx, func(n *domain.Note) bool {
		return n.ID == noteID && n.OwnedBy(userID)
	})
	if err != nil {
		return orNotFound(err, "note not found")
	}

	s.logger.Info("Note deleted", "note_id", noteID, "user_id", userID)
	return nil
}
