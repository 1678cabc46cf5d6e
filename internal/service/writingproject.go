package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bexshelf/bexshelf-server/internal/domain"
	domainerrors "github.com/bexshelf/bexshelf-server/internal/errors"
	"github.com/bexshelf/bexshelf-server/internal/id"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// WritingProjectService manages writing projects and their notebook
// content. A project's current word count mirrors the notebook file and
// only changes through the notebook save cascade.
type WritingProjectService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewWritingProjectService creates a new writing project service.
func NewWritingProjectService(store *store.Store, logger *slog.Logger) *WritingProjectService {
	return &WritingProjectService{store: store, logger: logger}
}

// CreateWritingProjectRequest contains data for a new project.
type CreateWritingProjectRequest struct {
	Title           string `json:"title" validate:"required,max=300"`
	Description     string `json:"description" validate:"max=2000"`
	Type            string `json:"type" validate:"required,max=100"`
	TargetWordCount int    `json:"targetWordCount" validate:"gte=0"`
	Deadline        string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateWritingProjectRequest contains a partial project update.
// CurrentWordCount is intentionally absent; it only moves via SaveNotebook.
type UpdateWritingProjectRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=300"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
	Type            *string `json:"type" validate:"omitempty,max=100"`
	Status          *string `json:"status" validate:"omitempty,oneof=planning in_progress completed"`
	TargetWordCount *int    `json:"targetWordCount" validate:"omitempty,gte=0"`
	Deadline        *string `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
}

// ListWritingProjects returns all of the user's projects.
func (s *WritingProjectService) ListWritingProjects(ctx context.Context, userID string) ([]domain.WritingProject, error) {
	projects, err := s.store.WritingProjects.Filter(ctx, func(p *domain.WritingProject) bool {
		return p.OwnedBy(userID)
	})
	if err != nil {
		return nil, fmt.Errorf("list writing projects: %w", err)
	}
	if projects == nil {
		projects = []domain.WritingProject{}
	}
	return projects, nil
}

// GetWritingProject retrieves a project the user owns.
func (s *WritingProjectService) GetWritingProject(ctx context.Context, userID, projectID string) (*domain.WritingProject, error) {
	project, err := s.store.WritingProjects.Find(ctx, func(p *domain.WritingProject) bool {
		return p.ID == projectID && p.OwnedBy(userID)
	})
	if err != nil {
		return nil, orNotFound(err, "writing project not found")
	}
	return project, nil
}

// CreateWritingProject creates a project in the planning phase with a
// zero word count.
func (s *WritingProjectService) CreateWritingProject(ctx context.Context, userID string, req CreateWritingProjectRequest) (*domain.WritingProject, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	projectID, err := id.Generate(id.WritingProject)
	if err != nil {
		return nil, fmt.Errorf("generate project ID: %w", err)
	}

	project := domain.WritingProject{
		Record:          domain.Record{ID: projectID},
		Owned:           domain.Owned{UserID: userID},
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Type:            req.Type,
		Status:          domain.ProjectStatusPlanning,
		TargetWordCount: req.TargetWordCount,
	}
	if req.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return nil, domainerrors.Validation("deadline must be a date in format 2006-01-02")
		}
		project.Deadline = &deadline
	}
	project.InitTimestamps()

	if err := s.store.WritingProjects.Insert(ctx, project); err != nil {
		return nil, fmt.Errorf("save writing project: %w", err)
	}

	s.logger.Info("Writing project created", "project_id", projectID, "user_id", userID)
	return &project, nil
}

// UpdateWritingProject applies a partial update to a project the user owns.
func (s *WritingProjectService) UpdateWritingProject(ctx context.Context, userID, projectID string, req UpdateWritingProjectRequest) (*domain.WritingProject, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	var deadline *time.Time
	if req.Deadline != nil && *req.Deadline != "" {
		parsed, err := time.Parse("2006-01-02", *req.Deadline)
		if err != nil {
			return nil, domainerrors.Validation("deadline must be a date in format 2006-01-02")
		}
		deadline = &parsed
	}

	project, err := s.store.WritingProjects.Update(ctx,
		func(p *domain.WritingProject) bool { return p.ID == projectID && p.OwnedBy(userID) },
		func(p *domain.WritingProject) error {
			if req.Title != nil {
				p.Title = strings.TrimSpace(*req.Title)
			}
			if req.Description != nil {
				p.Description = *req.Description
			}
			if req.Type != nil {
				p.Type = *req.Type
			}
			if req.Status != nil {
				p.Status = domain.ProjectStatus(*req.Status)
			}
			if req.TargetWordCount != nil {
				p.TargetWordCount = *req.TargetWordCount
			}
			if req.Deadline != nil {
				// An explicit empty string clears the deadline.
				p.Deadline = deadline
			}
			p.Touch()
			return nil
		},
	)
	if err != nil {
		return nil, orNotFound(err, "writing project not found")
	}
	return project, nil
}

// DeleteWritingProject removes a project and its notebook content file.
func (s *WritingProjectService) DeleteWritingProject(ctx context.Context, userID, projectID string) error {
	_, err := s.store.WritingProjects.Remove(ctx, func(p *domain.WritingProject) bool {
		return p.ID == projectID && p.OwnedBy(userID)
	})
	if err != nil {
		return orNotFound(err, "writing project not found")
	}

	s.store.NotebookContent.Delete(ctx, projectID)

	s.logger.Info("Writing project deleted", "project_id", projectID, "user_id", userID)
	return nil
}

// GetNotebook returns the project's notebook content, or an empty body
// if nothing was ever saved.
func (s *WritingProjectService) GetNotebook(ctx context.Context, userID, projectID string) (*domain.SideContent, error) {
	if _, err := s.GetWritingProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	content, err := s.store.NotebookContent.Get(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("read notebook content: %w", err)
	}
	if content == nil {
		return domain.EmptySideContent(), nil
	}
	return content, nil
}

// SaveNotebook persists the project's notebook content and cascades the
// save's word count into the project record.
func (s *WritingProjectService) SaveNotebook(ctx context.Context, userID, projectID string, req SaveContentRequest) (*domain.SideContent, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.GetWritingProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	content, err := s.store.NotebookContent.Save(ctx, projectID, req.Content, req.WordCount, req.Theme)
	if err != nil {
		return nil, fmt.Errorf("save notebook content: %w", err)
	}

	_, err = s.store.WritingProjects.Update(ctx,
		func(p *domain.WritingProject) bool { return p.ID == projectID && p.OwnedBy(userID) },
		func(p *domain.WritingProject) error {
			p.CurrentWordCount = req.WordCount
			p.Touch()
			return nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("cascade word count: %w", err)
	}

	return content, nil
}
