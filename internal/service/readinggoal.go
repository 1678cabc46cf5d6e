package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bexshelf/bexshelf-server/internal/domain"
	domainerrors "github.com/bexshelf/bexshelf-server/internal/errors"
	"github.com/bexshelf/bexshelf-server/internal/id"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// ReadingGoalService manages yearly reading targets. At most one goal
// per (user, year) is active; creating or activating a goal deactivates
// the others for that year in the same write.
type ReadingGoalService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewReadingGoalService creates a new reading goal service.
func NewReadingGoalService(store *store.Store, logger *slog.Logger) *ReadingGoalService {
	return &ReadingGoalService{store: store, logger: logger}
}

// CreateReadingGoalRequest contains data for a new goal.
type CreateReadingGoalRequest struct {
	TargetBooks int `json:"targetBooks" validate:"required,gt=0"`
	TargetPages int `json:"targetPages" validate:"gte=0"`
	Year        int `json:"year" validate:"required,gte=1970,lte=3000"`
}

// UpdateReadingGoalRequest contains a partial goal update.
type UpdateReadingGoalRequest struct {
	TargetBooks *int  `json:"targetBooks" validate:"omitempty,gt=0"`
	TargetPages *int  `json:"targetPages" validate:"omitempty,gte=0"`
	IsActive    *bool `json:"isActive"`
}

// ListReadingGoals returns all of the user's goals across years.
func (s *ReadingGoalService) ListReadingGoals(ctx context.Context, userID string) ([]domain.ReadingGoal, error) {
	goals, err := s.store.ReadingGoals.Filter(ctx, func(g *domain.ReadingGoal) bool {
		return g.OwnedBy(userID)
	})
	if err != nil {
		return nil, fmt.Errorf("list reading goals: %w", err)
	}
	if goals == nil {
		goals = []domain.ReadingGoal{}
	}
	return goals, nil
}

// ListReadingGoalsByYear returns the user's goals for one year.
func (s *ReadingGoalService) ListReadingGoalsByYear(ctx context.Context, userID string, year int) ([]domain.ReadingGoal, error) {
	goals, err := s.store.ReadingGoals.Filter(ctx, func(g *domain.ReadingGoal) bool {
		return g.OwnedBy(userID) && g.Year == year
	})
	if err != nil {
		return nil, fmt.Errorf("list reading goals by year: %w", err)
	}
	if goals == nil {
		goals = []domain.ReadingGoal{}
	}
	return goals, nil
}

// ActiveGoal returns the user's active goal for the given year.
func (s *ReadingGoalService) ActiveGoal(ctx context.Context, userID string, year int) (*domain.ReadingGoal, error) {
	goal, err := s.store.ReadingGoals.Find(ctx, func(g *domain.ReadingGoal) bool {
		return g.OwnedBy(userID) && g.Year == year && g.IsActive
	})
	if err != nil {
		return nil, domainerrors.NotFoundf("no active reading goal for %d", year)
	}
	return goal, nil
}

// CreateReadingGoal creates a goal and makes it the active one for its
// year, deactivating any others in the same locked write.
func (s *ReadingGoalService) CreateReadingGoal(ctx context.Context, userID string, req CreateReadingGoalRequest) (*domain.ReadingGoal, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	goalID, err := id.Generate(id.ReadingGoal)
	if err != nil {
		return nil, fmt.Errorf("generate goal ID: %w", err)
	}

	goal := domain.ReadingGoal{
		Record:      domain.Record{ID: goalID},
		Owned:       domain.Owned{UserID: userID},
		TargetBooks: req.TargetBooks,
		TargetPages: req.TargetPages,
		Year:        req.Year,
		IsActive:    true,
	}
	goal.InitTimestamps()

	err = s.store.ReadingGoals.Transact(ctx, func(goals []domain.ReadingGoal) ([]domain.ReadingGoal, error) {
		for i := range goals {
			if goals[i].OwnedBy(userID) && goals[i].Year == req.Year && goals[i].IsActive {
				goals[i].IsActive = false
				goals[i].Touch()
			}
		}
		return append(goals, goal), nil
	})
	if err != nil {
		return nil, fmt.Errorf("save reading goal: %w", err)
	}

	s.logger.Info("Reading goal created", "goal_id", goalID, "user_id", userID, "year", req.Year)
	return &goal, nil
}

// UpdateReadingGoal applies a partial update. Setting IsActive to true
// deactivates the user's other goals for the same year; setting it to
// false just deactivates this one.
func (s *ReadingGoalService) UpdateReadingGoal(ctx context.Context, userID, goalID string, req UpdateReadingGoalRequest) (*domain.ReadingGoal, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	var updated *domain.ReadingGoal
	err := s.store.ReadingGoals.Transact(ctx, func(goals []domain.ReadingGoal) ([]domain.ReadingGoal, error) {
		idx := -1
		for i := range goals {
			if goals[i].ID == goalID && goals[i].OwnedBy(userID) {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, domainerrors.NotFound("reading goal not found")
		}

		g := &goals[idx]
		if req.TargetBooks != nil {
			g.TargetBooks = *req.TargetBooks
		}
		if req.TargetPages != nil {
			g.TargetPages = *req.TargetPages
		}
		if req.IsActive != nil {
			g.IsActive = *req.IsActive
			if *req.IsActive {
				for i := range goals {
					if i != idx && goals[i].OwnedBy(userID) && goals[i].Year == g.Year && goals[i].IsActive {
						goals[i].IsActive = false
						goals[i].Touch()
					}
				}
			}
		}
		g.Touch()

		copied := *g
		updated = &copied
		return goals, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteReadingGoal removes a goal.
func (s *ReadingGoalService) DeleteReadingGoal(ctx context.Context, userID, goalID string) error {
	_, err := s.store.ReadingGoals.Remove(ctx, func(g *domain.ReadingGoal) bool {
		return g.ID == goalID && g.OwnedBy(userID)
	})
	if err != nil {
		return orNotFound(err, "reading goal not found")
	}

	s.logger.Info("Reading goal deleted", "goal_id", goalID, "user_id", userID)
	return nil
}
