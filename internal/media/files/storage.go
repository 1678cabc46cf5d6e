// Package files provides storage for uploaded binaries (book PDFs, vision board images).
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bexshelf/bexshelf-server/internal/errors"
)

// Storage manages one upload directory for a single entity type.
// Files are named by the owning entity's ID so they can be found again
// with a prefix scan. Thread-safe for concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex
}

// NewStorage creates a Storage rooted at {basePath}/{subdir}, creating
// the directory if needed.
// Example: NewStorage("/srv/uploads", "books") -> /srv/uploads/books/.
func NewStorage(basePath, subdir string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if subdir == "" {
		return nil, fmt.Errorf("subdirectory cannot be empty")
	}

	storagePath := filepath.Join(basePath, subdir)
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", subdir, err)
	}

	return &Storage{basePath: storagePath}, nil
}

// Save stores data as {id}{ext} (e.g. "book-abc123.pdf"), replacing any
// previous file for the same ID. Returns the stored file name.
func (s *Storage) Save(id, ext string, data []byte) (string, error) {
	return s.write(id, id+ext, data)
}

// SaveNamed stores data as {id}-{originalName}, preserving the uploaded
// file's name for display. Returns the stored file name.
func (s *Storage) SaveNamed(id, originalName string, data []byte) (string, error) {
	return s.write(id, id+"-"+sanitizeName(originalName), data)
}

func (s *Storage) write(id, fileName string, data []byte) (string, error) {
	if id == "" {
		return "", fmt.Errorf("ID cannot be empty")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("file data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// One file per entity: drop whatever was stored for this ID before.
	s.deleteLocked(id)

	path := filepath.Join(s.basePath, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return fileName, nil
}

// Resolve returns the full path of the stored file whose name starts
// with the given ID. Returns ErrNotFound if no such file exists.
func (s *Storage) Resolve(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("ID cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	name, err := s.findLocked(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.basePath, name), nil
}

// PathFor returns the full path for a stored file name. It does not
// check existence; use it to serve files whose names are recorded on
// the owning entity.
func (s *Storage) PathFor(fileName string) string {
	return filepath.Join(s.basePath, filepath.Base(fileName))
}

// Delete removes the stored file for an entity, best-effort. Errors are
// swallowed; a missing file is the common case.
func (s *Storage) Delete(id string) {
	if id == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(id)
}

// findLocked scans the directory for a file named with the ID prefix.
func (s *Storage) findLocked(id string) (string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return "", fmt.Errorf("read upload directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), id) {
			return entry.Name(), nil
		}
	}
	return "", errors.NotFoundf("no file stored for %s", id)
}

func (s *Storage) deleteLocked(id string) {
	name, err := s.findLocked(id)
	if err != nil {
		return
	}
	_ = os.Remove(filepath.Join(s.basePath, name))
}

// sanitizeName strips path components and characters that don't belong
// in a filename we construct from user input.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "upload"
	}
	return name
}
