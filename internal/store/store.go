// Package store implements the flat-file record store backing bexshelf.
//
// Every entity type persists as a single JSON array file under the data
// root; each operation reads the whole file, mutates an in-memory slice,
// and rewrites the whole file. A per-collection mutex serializes those
// read-modify-write cycles so concurrent requests can't clobber each
// other's saves. There are no transactions across collections and no
// indexes; the data sets involved are personal-scale.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bexshelf/bexshelf-server/internal/domain"
)

// Record file names, matching the data files the original client wrote.
const (
	usersFile           = "users.json"
	booksFile           = "books.json"
	journalsFile        = "journals.json"
	tasksFile           = "tasks.json"
	notesFile           = "notes.json"
	quickNotesFile      = "quick-notes.json"
	readingGoalsFile    = "reading-goals.json"
	writingProjectsFile = "writing-projects.json"
	visionBoardsFile    = "vision-boards.json"

	journalContentDir  = "journal-content"
	notebookContentDir = "notebook-content"
)

// Store owns the data root and one collection per entity type.
type Store struct {
	dataPath string
	logger   *slog.Logger

	Users           *Collection[domain.User]
	Books           *Collection[domain.Book]
	Journals        *Collection[domain.Journal]
	Tasks           *Collection[domain.Task]
	Notes           *Collection[domain.Note]
	QuickNotes      *Collection[domain.QuickNote]
	ReadingGoals    *Collection[domain.ReadingGoal]
	WritingProjects *Collection[domain.WritingProject]
	VisionBoards    *Collection[domain.VisionBoard]

	JournalContent  *ContentStore
	NotebookContent *ContentStore
}

// New creates a Store rooted at dataPath. All directories are created
// here, once, so read paths never have to ensure-exists lazily.
func New(dataPath string, logger *slog.Logger) (*Store, error) {
	if dataPath == "" {
		return nil, fmt.Errorf("data path cannot be empty")
	}

	for _, dir := range []string{
		dataPath,
		filepath.Join(dataPath, journalContentDir),
		filepath.Join(dataPath, notebookContentDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory %s: %w", dir, err)
		}
	}

	s := &Store{
		dataPath: dataPath,
		logger:   logger,
	}

	s.Users = NewCollection[domain.User](filepath.Join(dataPath, usersFile), logger)
	s.Books = NewCollection[domain.Book](filepath.Join(dataPath, booksFile), logger)
	s.Journals = NewCollection[domain.Journal](filepath.Join(dataPath, journalsFile), logger)
	s.Tasks = NewCollection[domain.Task](filepath.Join(dataPath, tasksFile), logger)
	s.Notes = NewCollection[domain.Note](filepath.Join(dataPath, notesFile), logger)
	s.QuickNotes = NewCollection[domain.QuickNote](filepath.Join(dataPath, quickNotesFile), logger)
	s.ReadingGoals = NewCollection[domain.ReadingGoal](filepath.Join(dataPath, readingGoalsFile), logger)
	s.WritingProjects = NewCollection[domain.WritingProject](filepath.Join(dataPath, writingProjectsFile), logger)
	s.VisionBoards = NewCollection[domain.VisionBoard](filepath.Join(dataPath, visionBoardsFile), logger)

	s.JournalContent = NewContentStore(filepath.Join(dataPath, journalContentDir), logger)
	s.NotebookContent = NewContentStore(filepath.Join(dataPath, notebookContentDir), logger)

	return s, nil
}

// DataPath returns the root directory of the store.
func (s *Store) DataPath() string {
	return s.dataPath
}
