package domain

import "time"

// BookStatus represents where a book sits on the shelf.
type BookStatus string

const (
	BookStatusWantToRead       BookStatus = "want_to_read"
	BookStatusCurrentlyReading BookStatus = "currently_reading"
	BookStatusFinished         BookStatus = "finished"
)

// IsValid reports whether the status is one of the three shelf states.
func (s BookStatus) IsValid() bool {
	switch s {
	case BookStatusWantToRead, BookStatusCurrentlyReading, BookStatusFinished:
		return true
	}
	return false
}

// Book represents a tracked book, optionally with an uploaded PDF.
type Book struct {
	Record
	Owned
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Genre       string     `json:"genre"`
	Status      BookStatus `json:"status"`
	Rating      int        `json:"rating,omitempty"` // 1-5
	Notes       string     `json:"notes,omitempty"`
	PDFPath     string     `json:"pdfPath,omitempty"`
	CurrentPage int        `json:"currentPage,omitempty"`
	TotalPages  int        `json:"totalPages,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	FinishDate  *time.Time `json:"finishDate,omitempty"`
}

// StampStatusDates sets StartDate/FinishDate on status transitions.
// Both stamps are idempotent: a date already set is never overwritten,
// so repeatedly re-finishing a book keeps the original finish date.
func (b *Book) StampStatusDates() {
	now := time.Now()
	if b.Status == BookStatusCurrentlyReading && b.StartDate == nil {
		b.StartDate = &now
	}
	if b.Status == BookStatusFinished && b.FinishDate == nil {
		b.FinishDate = &now
	}
}

// BookStats summarizes a user's shelf.
type BookStats struct {
	Total            int          `json:"total"`
	CurrentlyReading int          `json:"currentlyReading"`
	Finished         int          `json:"finished"`
	WantToRead       int          `json:"wantToRead"`
	TopGenres        []GenreCount `json:"topGenres"`
	AverageRating    float64      `json:"averageRating"`
}

// GenreCount pairs a genre with how many of the user's books carry it.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}
