package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bexshelf/bexshelf-server/internal/domain"
	domainerrors "github.com/bexshelf/bexshelf-server/internal/errors"
	"github.com/bexshelf/bexshelf-server/internal/id"
	"github.com/bexshelf/bexshelf-server/internal/media/files"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// VisionBoardService manages vision boards and their embedded images.
// Image files live in the board upload storage; image records live
// inside the board document, never on their own.
type VisionBoardService struct {
	store  *store.Store
	images *files.Storage
	logger *slog.Logger
}

// NewVisionBoardService creates a new vision board service.
func NewVisionBoardService(store *store.Store, images *files.Storage, logger *slog.Logger) *VisionBoardService {
	return &VisionBoardService{
		store:  store,
		images: images,
		logger: logger,
	}
}

// CreateVisionBoardRequest contains data for a new board.
type CreateVisionBoardRequest struct {
	Year        int    `json:"year" validate:"required,gte=1970,lte=3000"`
	Month       int    `json:"month" validate:"required,gte=1,lte=12"`
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateVisionBoardRequest contains a partial board update.
type UpdateVisionBoardRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateImageRequest contains a partial placement update for one image.
type UpdateImageRequest struct {
	Position *domain.Position `json:"position"`
	Size     *domain.Size     `json:"size"`
	Rotation *float64         `json:"rotation"`
	ZIndex   *int             `json:"zIndex"`
}

// ListVisionBoards returns all of the user's boards.
func (s *VisionBoardService) ListVisionBoards(ctx context.Context, userID string) ([]domain.VisionBoard, error) {
	boards, err := s.store.VisionBoards.Filter(ctx, func(b *domain.VisionBoard) bool {
		return b.OwnedBy(userID)
	})
	if err != nil {
		return nil, fmt.Errorf("list vision boards: %w", err)
	}
	if boards == nil {
		boards = []domain.VisionBoard{}
	}
	return boards, nil
}

// GetVisionBoard retrieves a board the user owns.
func (s *VisionBoardService) GetVisionBoard(ctx context.Context, userID, boardID string) (*domain.VisionBoard, error) {
	board, err := s.store.VisionBoards.Find(ctx, func(b *domain.VisionBoard) bool {
		return b.ID == boardID && b.OwnedBy(userID)
	})
	if err != nil {
		return nil, orNotFound(err, "vision board not found")
	}
	return board, nil
}

// GetVisionBoardByMonth retrieves the user's board for a given year and month.
func (s *VisionBoardService) GetVisionBoardByMonth(ctx context.Context, userID string, year, month int) (*domain.VisionBoard, error) {
	board, err := s.store.VisionBoards.Find(ctx, func(b *domain.VisionBoard) bool {
		return b.OwnedBy(userID) && b.Year == year && b.Month == month
	})
	if err != nil {
		return nil, domainerrors.NotFoundf("no vision board for %d-%02d", year, month)
	}
	return board, nil
}

// CreateVisionBoard creates an empty board for a year and month. A user
// gets at most one board per month.
func (s *VisionBoardService) CreateVisionBoard(ctx context.Context, userID string, req CreateVisionBoardRequest) (*domain.VisionBoard, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	boardID, err := id.Generate(id.VisionBoard)
	if err != nil {
		return nil, fmt.Errorf("generate board ID: %w", err)
	}

	board := domain.VisionBoard{
		Record:      domain.Record{ID: boardID},
		Owned:       domain.Owned{UserID: userID},
		Year:        req.Year,
		Month:       req.Month,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Images:      []domain.VisionImage{},
	}
	board.InitTimestamps()

	// Uniqueness check and insert in one locked cycle.
	err = s.store.VisionBoards.Transact(ctx, func(boards []domain.VisionBoard) ([]domain.VisionBoard, error) {
		for i := range boards {
			if boards[i].OwnedBy(userID) && boards[i].Year == req.Year && boards[i].Month == req.Month {
				return nil, domainerrors.Conflict(fmt.Sprintf("vision board for %d-%02d already exists", req.Year, req.Month))
			}
		}
		return append(boards, board), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Vision board created", "board_id", boardID, "user_id", userID, "year", req.Year, "month", req.Month)
	return &board, nil
}

// UpdateVisionBoard applies a partial update to a board's metadata.
func (s *VisionBoardService) UpdateVisionBoard(ctx context.Context, userID, boardID string, req UpdateVisionBoardRequest) (*domain.VisionBoard, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	board, err := s.store.VisionBoards.Update(ctx,
		func(b *domain.VisionBoard) bool { return b.ID == boardID && b.OwnedBy(userID) },
		func(b *domain.VisionBoard) error {
			if req.Title != nil {
				b.Title = strings.TrimSpace(*req.Title)
			}
			if req.Description != nil {
				b.Description = *req.Description
			}
			b.Touch()
			return nil
		},
	)
	if err != nil {
		return nil, orNotFound(err, "vision board not found")
	}
	return board, nil
}

// DeleteVisionBoard removes a board and every image file it owned.
func (s *VisionBoardService) DeleteVisionBoard(ctx context.Context, userID, boardID string) error {
	board, err := s.store.VisionBoards.Remove(ctx, func(b *domain.VisionBoard) bool {
		return b.ID == boardID && b.OwnedBy(userID)
	})
	if err != nil {
		return orNotFound(err, "vision board not found")
	}

	for i := range board.Images {
		s.images.Delete(board.Images[i].ID)
	}

	s.logger.Info("Vision board deleted", "board_id", boardID, "user_id", userID, "images", len(board.Images))
	return nil
}

// AddImage stores an uploaded image and embeds its record in the board
// with default placement and a stacking order above every existing image.
// The board is checked first so an upload against a missing board never
// leaves an orphaned file.
func (s *VisionBoardService) AddImage(ctx context.Context, userID, boardID, originalName string, data []byte) (*domain.VisionImage, error) {
	if _, err := s.GetVisionBoard(ctx, userID, boardID); err != nil {
		return nil, err
	}

	imageID, err := id.Generate(id.VisionImage)
	if err != nil {
		return nil, fmt.Errorf("generate image ID: %w", err)
	}

	fileName, err := s.images.SaveNamed(imageID, originalName, data)
	if err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	image := domain.VisionImage{
		Record:        domain.Record{ID: imageID},
		VisionBoardID: boardID,
		FileName:      fileName,
		FilePath:      filepath.ToSlash(filepath.Join("vision-boards", fileName)),
		Position:      domain.DefaultImagePosition,
		Size:          domain.DefaultImageSize,
	}
	image.InitTimestamps()

	// Display hints are best-effort; non-decodable bytes just skip them.
	if info, err := files.ProbeImage(data); err == nil {
		image.Width = info.Width
		image.Height = info.Height
		image.BlurHash = info.BlurHash
	}

	_, err = s.store.VisionBoards.Update(ctx,
		func(b *domain.VisionBoard) bool { return b.ID == boardID && b.OwnedBy(userID) },
		func(b *domain.VisionBoard) error {
			image.ZIndex = b.NextZIndex()
			b.Images = append(b.Images, image)
			b.Touch()
			return nil
		},
	)
	if err != nil {
		// Board vanished between the check and the update; don't keep the file.
		s.images.Delete(imageID)
		return nil, orNotFound(err, "vision board not found")
	}

	s.logger.Info("Vision image added", "board_id", boardID, "image_id", imageID)
	return &image, nil
}

// UpdateImage applies a partial placement update to one embedded image.
func (s *VisionBoardService) UpdateImage(ctx context.Context, userID, boardID, imageID string, req UpdateImageRequest) (*domain.VisionImage, error) {
	var updated domain.VisionImage

	_, err := s.store.VisionBoards.Update(ctx,
		func(b *domain.VisionBoard) bool { return b.ID == boardID && b.OwnedBy(userID) },
		func(b *domain.VisionBoard) error {
			idx := b.ImageByID(imageID)
			if idx == -1 {
				return domainerrors.NotFound("image not found")
			}
			img := &b.Images[idx]
			if req.Position != nil {
				img.Position = *req.Position
			}
			if req.Size != nil {
				img.Size = *req.Size
			}
			if req.Rotation != nil {
				img.Rotation = *req.Rotation
			}
			if req.ZIndex != nil {
				img.ZIndex = *req.ZIndex
			}
			img.Touch()
			b.Touch()
			updated = *img
			return nil
		},
	)
	if err != nil {
		// The bare sentinel means the board itself didn't match; an error
		// out of the mutate callback is already shaped.
		return nil, orNotFound(err, "vision board not found")
	}
	return &updated, nil
}

// DeleteImage removes an embedded image record and its file.
func (s *VisionBoardService) DeleteImage(ctx context.Context, userID, boardID, imageID string) error {
	_, err := s.store.VisionBoards.Update(ctx,
		func(b *domain.VisionBoard) bool { return b.ID == boardID && b.OwnedBy(userID) },
		func(b *domain.VisionBoard) error {
			idx := b.ImageByID(imageID)
			if idx == -1 {
				return domainerrors.NotFound("image not found")
			}
			b.Images = append(b.Images[:idx], b.Images[idx+1:]...)
			b.Touch()
			return nil
		},
	)
	if err != nil {
		return orNotFound(err, "vision board not found")
	}

	s.images.Delete(imageID)

	s.logger.Info("Vision image deleted", "board_id", boardID, "image_id", imageID)
	return nil
}

// ResolveImage returns the on-disk path of a board image file.
func (s *VisionBoardService) ResolveImage(ctx context.Context, userID, boardID, imageID string) (string, error) {
	board, err := s.GetVisionBoard(ctx, userID, boardID)
	if err != nil {
		return "", err
	}
	if board.ImageByID(imageID) == -1 {
		return "", domainerrors.NotFound("image not found")
	}

	path, err := s.images.Resolve(imageID)
	if err != nil {
		return "", domainerrors.NotFound("image file missing")
	}
	return path, nil
}

// ResolveImageByID locates an image across all of the user's boards and
// returns its on-disk path.
func (s *VisionBoardService) ResolveImageByID(ctx context.Context, userID, imageID string) (string, error) {
	board, err := s.store.VisionBoards.Find(ctx, func(b *domain.VisionBoard) bool {
		return b.OwnedBy(userID) && b.ImageByID(imageID) != -1
	})
	if err != nil {
		return "", orNotFound(err, "image not found")
	}

	return s.ResolveImage(ctx, userID, board.ID, imageID)
}
