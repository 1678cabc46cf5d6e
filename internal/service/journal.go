package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bexshelf/bexshelf-server/internal/domain"
	"github.com/bexshelf/bexshelf-server/internal/id"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// JournalService manages journal records and their side content.
type JournalService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewJournalService creates a new journal service.
func NewJournalService(store *store.Store, logger *slog.Logger) *JournalService {
	return &JournalService{store: store, logger: logger}
}

// CreateJournalRequest contains data for a new journal.
type CreateJournalRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Cover       string `json:"cover" validate:"max=100"`
	Privacy     string `json:"privacy" validate:"omitempty,oneof=private public"`
}

// UpdateJournalRequest contains a partial journal update.
type UpdateJournalRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Cover       *string `json:"cover" validate:"omitempty,max=100"`
	Privacy     *string `json:"privacy" validate:"omitempty,oneof=private public"`
}

// SaveContentRequest carries an editor save for journal or notebook content.
type SaveContentRequest struct {
	Content   string `json:"content"`
	WordCount int    `json:"wordCount" validate:"gte=0"`
	Theme     string `json:"theme" validate:"max=50"`
}

// ListJournals returns all of the user's journals.
func (s *JournalService) ListJournals(ctx context.Context, userID string) ([]domain.Journal, error) {
	journals, err := s.store.Journals.Filter(ctx, func(j *domain.Journal) bool {
		return j.OwnedBy(userID)
	})
	if err != nil {
		return nil, fmt.Errorf("list journals: %w", err)
	}
	if journals == nil {
		journals = []domain.Journal{}
	}
	return journals, nil
}

// GetJournal retrieves a journal the user owns.
func (s *JournalService) GetJournal(ctx context.Context, userID, journalID string) (*domain.Journal, error) {
	journal, err := s.store.Journals.Find(ctx, func(j *domain.Journal) bool {
		return j.ID == journalID && j.OwnedBy(userID)
	})
	if err != nil {
		return nil, orNotFound(err, "journal not found")
	}
	return journal, nil
}

// CreateJournal creates a new journal. Privacy defaults to private.
func (s *JournalService) CreateJournal(ctx context.Context, userID string, req CreateJournalRequest) (*domain.Journal, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	journalID, err := id.Generate(id.Journal)
	if err != nil {
		return nil, fmt.Errorf("generate journal ID: %w", err)
	}

	privacy := domain.JournalPrivacy(req.Privacy)
	if privacy == "" {
		privacy = domain.JournalPrivacyPrivate
	}

	journal := domain.Journal{
		Record:      domain.Record{ID: journalID},
		Owned:       domain.Owned{UserID: userID},
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Cover:       req.Cover,
		Privacy:     privacy,
	}
	journal.InitTimestamps()

	if err := s.store.Journals.Insert(ctx, journal); err != nil {
		return nil, fmt.Errorf("save journal: %w", err)
	}

	s.logger.Info("Journal created", "journal_id", journalID, "user_id", userID)
	return &journal, nil
}

// UpdateJournal applies a partial update to a journal the user owns.
func (s *JournalService) UpdateJournal(ctx context.Context, userID, journalID string, req UpdateJournalRequest) (*domain.Journal, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	journal, err := s.store.Journals.Update(ctx,
		func(j *domain.Journal) bool { return j.ID == journalID && j.OwnedBy(userID) },
		func(j *domain.Journal) error {
			if req.Title != nil {
				j.Title = strings.TrimSpace(*req.Title)
			}
			if req.Description != nil {
				j.Description = *req.Description
			}
			if req.Cover != nil {
				j.Cover = *req.Cover
			}
			if req.Privacy != nil {
				j.Privacy = domain.JournalPrivacy(*req.Privacy)
			}
			j.Touch()
			return nil
		},
	)
	if err != nil {
		return nil, orNotFound(err, "journal not found")
	}
	return journal, nil
}

// DeleteJournal removes a journal and its side content file.
func (s *JournalService) DeleteJournal(ctx context.Context, userID, journalID string) error {
	_, err := s.store.Journals.Remove(ctx, func(j *domain.Journal) bool {
		return j.ID == journalID && j.OwnedBy(userID)
	})
	if err != nil {
		return orNotFound(err, "journal not found")
	}

	s.store.JournalContent.Delete(ctx, journalID)

	s.logger.Info("Journal deleted", "journal_id", journalID, "user_id", userID)
	return nil
}

// GetContent returns the journal's side content, or an empty body if
// nothing was ever saved.
func (s *JournalService) GetContent(ctx context.Context, userID, journalID string) (*domain.SideContent, error) {
	if _, err := s.GetJournal(ctx, userID, journalID); err != nil {
		return nil, err
	}

	content, err := s.store.JournalContent.Get(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("read journal content: %w", err)
	}
	if content == nil {
		return domain.EmptySideContent(), nil
	}
	return content, nil
}

// SaveContent persists the journal's side content.
func (s *JournalService) SaveContent(ctx context.Context, userID, journalID string, req SaveContentRequest) (*domain.SideContent, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.GetJournal(ctx, userID, journalID); err != nil {
		return nil, err
	}

	content, err := s.store.JournalContent.Save(ctx, journalID, req.Content, req.WordCount, req.Theme)
	if err != nil {
		return nil, fmt.Errorf("save journal content: %w", err)
	}
	return content, nil
}
