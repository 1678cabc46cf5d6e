package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bexshelf/bexshelf-server/internal/domain"
	domainerrors "github.com/bexshelf/bexshelf-server/internal/errors"
	"github.com/bexshelf/bexshelf-server/internal/id"
	"github.com/bexshelf/bexshelf-server/internal/media/files"
	"github.com/bexshelf/bexshelf-server/internal/store"
)

// BookService orchestrates shelf operations and PDF attachments.
type BookService struct {
	store  *store.Store
	pdfs   *files.Storage
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store *store.Store, pdfs *files.Storage, logger *slog.Logger) *BookService {
	return &BookService{
		store:  store,
		pdfs:   pdfs,
		logger: logger,
	}
}

// CreateBookRequest contains the data for adding a book to the shelf.
type CreateBookRequest struct {
	Title      string `json:"title" validate:"required,max=500"`
	Author     string `json:"author" validate:"required,max=200"`
	Genre      string `json:"genre" validate:"required,max=100"`
	Status     string `json:"status" validate:"omitempty,oneof=want_to_read currently_reading finished"`
	Rating     int    `json:"rating" validate:"gte=0,lte=5"`
	Notes      string `json:"notes"`
	TotalPages int    `json:"totalPages" validate:"gte=0"`
}

// UpdateBookRequest contains a partial book update. Nil fields are left
// unchanged.
type UpdateBookRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=500"`
	Author      *string `json:"author" validate:"omitempty,max=200"`
	Genre       *string `json:"genre" validate:"omitempty,max=100"`
	Status      *string `json:"status" validate:"omitempty,oneof=want_to_read currently_reading finished"`
	Rating      *int    `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Notes       *string `json:"notes"`
	CurrentPage *int    `json:"currentPage" validate:"omitempty,gte=0"`
	TotalPages  *int    `json:"totalPages" validate:"omitempty,gte=0"`
}

// ListBooks returns all of the user's books in stored order.
func (s *BookService) ListBooks(ctx context.Context, userID string) ([]domain.Book, error) {
	books, err := s.store.Books.Filter(ctx, func(b *domain.Book) bool {
		return b.OwnedBy(userID)
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if books == nil {
		books = []domain.Book{}
	}
	return books, nil
}

// ListBooksByStatus returns the user's books on one shelf.
func (s *BookService) ListBooksByStatus(ctx context.Context, userID, status string) ([]domain.Book, error) {
	if !domain.BookStatus(status).IsValid() {
		return nil, domainerrors.Validationf("invalid book status %q", status)
	}

	books, err := s.store.Books.Filter(ctx, func(b *domain.Book) bool {
		return b.OwnedBy(userID) && b.Status == domain.BookStatus(status)
	})
	if err != nil {
		return nil, fmt.Errorf("list books by status: %w", err)
	}
	if books == nil {
		books = []domain.Book{}
	}
	return books, nil
}

// GetBook retrieves a single book the user owns.
func (s *BookService) GetBook(ctx context.Context, userID, bookID string) (*domain.Book, error) {
	book, err := s.store.Books.Find(ctx, func(b *domain.Book) bool {
		return b.ID == bookID && b.OwnedBy(userID)
	})
	if err != nil {
		return nil, orNotFound(err, "book not found")
	}
	return book, nil
}

// CreateBook adds a book to the user's shelf.
// A book created as currently-reading gets its start date stamped immediately.
func (s *BookService) CreateBook(ctx context.Context, userID string, req CreateBookRequest) (*domain.Book, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	bookID, err := id.Generate(id.Book)
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	status := domain.BookStatus(req.Status)
	if status == "" {
		status = domain.BookStatusWantToRead
	}

	book := domain.Book{
		Record:     domain.Record{ID: bookID},
		Owned:      domain.Owned{UserID: userID},
		Title:      strings.TrimSpace(req.Title),
		Author:     strings.TrimSpace(req.Author),
		Genre:      strings.TrimSpace(req.Genre),
		Status:     status,
		Rating:     req.Rating,
		Notes:      req.Notes,
		TotalPages: req.TotalPages,
	}
	book.InitTimestamps()
	book.StampStatusDates()

	if err := s.store.Books.Insert(ctx, book); err != nil {
		return nil, fmt.Errorf("save book: %w", err)
	}

	s.logger.Info("Book added", "book_id", bookID, "user_id", userID)
	return &book, nil
}

// UpdateBook applies a partial update to a book the user owns.
// Status transitions stamp the start/finish dates; dates already set are
// never overwritten.
func (s *BookService) UpdateBook(ctx context.Context, userID, bookID string, req UpdateBookRequest) (*domain.Book, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.store.Books.Update(ctx,
		func(b *domain.Book) bool { return b.ID == bookID && b.OwnedBy(userID) },
		func(b *domain.Book) error {
			if req.Title != nil {
				b.Title = strings.TrimSpace(*req.Title)
			}
			if req.Author != nil {
				b.Author = strings.TrimSpace(*req.Author)
			}
			if req.Genre != nil {
				b.Genre = strings.TrimSpace(*req.Genre)
			}
			if req.Status != nil {
				b.Status = domain.BookStatus(*req.Status)
			}
			if req.Rating != nil {
				b.Rating = *req.Rating
			}
			if req.Notes != nil {
				b.Notes = *req.Notes
			}
			if req.CurrentPage != nil {
				b.CurrentPage = *req.CurrentPage
			}
			if req.TotalPages != nil {
				b.TotalPages = *req.TotalPages
			}
			b.StampStatusDates()
			b.Touch()
			return nil
		},
	)
	if err != nil {
		return nil, orNotFound(err, "book not found")
	}
	return book, nil
}

// DeleteBook removes a book and its attached PDF, if any.
func (s *BookService) DeleteBook(ctx context.Context, userID, bookID string) error {
	_, err := s.store.Books.Remove(ctx, func(b *domain.Book) bool {
		return b.ID == bookID && b.OwnedBy(userID)
	})
	if err != nil {
		return orNotFound(err, "book not found")
	}

	s.pdfs.Delete(bookID)

	s.logger.Info("Book deleted", "book_id", bookID, "user_id", userID)
	return nil
}

// AttachPDF stores an uploaded PDF for the book and records its path.
// Re-uploading replaces the previous file.
func (s *BookService) AttachPDF(ctx context.Context, userID, bookID string, data []byte) (*domain.Book, error) {
	// Confirm ownership before anything touches disk, so an upload against
	// a missing book never leaves an orphaned file behind.
	if _, err := s.GetBook(ctx, userID, bookID); err != nil {
		return nil, err
	}

	fileName, err := s.pdfs.Save(bookID, ".pdf", data)
	if err != nil {
		return nil, fmt.Errorf("save pdf: %w", err)
	}

	book, err := s.store.Books.Update(ctx,
		func(b *domain.Book) bool { return b.ID == bookID && b.OwnedBy(userID) },
		func(b *domain.Book) error {
			b.PDFPath = fileName
			b.Touch()
			return nil
		},
	)
	if err != nil {
		// The book vanished between the ownership check and the update;
		// don't keep the file around.
		s.pdfs.Delete(bookID)
		return nil, orNotFound(err, "book not found")
	}

	s.logger.Info("PDF attached", "book_id", bookID, "file", fileName)
	return book, nil
}

// ResolvePDF returns the on-disk path of the book's PDF.
func (s *BookService) ResolvePDF(ctx context.Context, userID, bookID string) (string, error) {
	book, err := s.GetBook(ctx, userID, bookID)
	if err != nil {
		return "", err
	}
	if book.PDFPath == "" {
		return "", domainerrors.NotFound("book has no PDF")
	}

	path, err := s.pdfs.Resolve(bookID)
	if err != nil {
		return "", domainerrors.NotFound("book has no PDF")
	}
	return path, nil
}

// Stats summarizes the user's shelf: counts per status, top genres, and
// the average of nonzero ratings.
func (s *BookService) Stats(ctx context.Context, userID string) (*domain.BookStats, error) {
	books, err := s.ListBooks(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.BookStats{Total: len(books), TopGenres: []domain.GenreCount{}}
	genres := make(map[string]int)
	ratingSum, rated := 0, 0

	for i := range books {
		switch books[i].Status {
		case domain.BookStatusCurrentlyReading:
			stats.CurrentlyReading++
		case domain.BookStatusFinished:
			stats.Finished++
		case domain.BookStatusWantToRead:
			stats.WantToRead++
		}
		if g := books[i].Genre; g != "" {
			genres[g]++
		}
		if r := books[i].Rating; r > 0 {
			ratingSum += r
			rated++
		}
	}

	for genre, count := range genres {
		stats.TopGenres = append(stats.TopGenres, domain.GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(stats.TopGenres, func(i, j int) bool {
		if stats.TopGenres[i].Count != stats.TopGenres[j].Count {
			return stats.TopGenres[i].Count > stats.TopGenres[j].Count
		}
		return stats.TopGenres[i].Genre < stats.TopGenres[j].Genre
	})
	if len(stats.TopGenres) > 5 {
		stats.TopGenres = stats.TopGenres[:5]
	}

	if rated > 0 {
		stats.AverageRating = float64(ratingSum) / float64(rated)
	}

	return stats, nil
}
